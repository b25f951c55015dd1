package repositories

import (
	"context"
	"errors"
	"testing"

	"github.com/desertthunder/mymusic/internal/models"
)

func TestUserRepositoryErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("InsertUser", func(t *testing.T) {
		t.Run("ValidationError", func(t *testing.T) {
			repo := NewUserRepository(setupTestDB(t))

			err := repo.InsertUser(ctx, models.NewCredential(0, "alice", nil))
			if !errors.Is(err, models.ErrMissingHash) {
				t.Fatalf("expected ErrMissingHash, got %v", err)
			}
		})

		t.Run("DuplicateUsername", func(t *testing.T) {
			repo := NewUserRepository(setupTestDB(t))

			if err := repo.InsertUser(ctx, models.NewCredential(0, "alice", []byte("one"))); err != nil {
				t.Fatalf("failed to insert first user: %v", err)
			}

			err := repo.InsertUser(ctx, models.NewCredential(0, "alice", []byte("two")))
			if !errors.Is(err, models.ErrConflict) {
				t.Fatalf("expected ErrConflict, got %v", err)
			}

			// the failed insert must not consume a sequence number
			third := models.NewCredential(0, "bob", []byte("three"))
			if err := repo.InsertUser(ctx, third); err != nil {
				t.Fatalf("failed to insert user: %v", err)
			}
			if third.Sequence() != 2 {
				t.Errorf("expected sequence 2, got %d", third.Sequence())
			}
		})
	})

	t.Run("FindUserByUsername", func(t *testing.T) {
		t.Run("NotFound", func(t *testing.T) {
			repo := NewUserRepository(setupTestDB(t))

			_, err := repo.FindUserByUsername(ctx, "nobody")
			if !errors.Is(err, models.ErrNotFound) {
				t.Fatalf("expected ErrNotFound, got %v", err)
			}
		})
	})

	t.Run("Closed Database", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserRepository(db)
		db.Close()

		_, err := repo.FindUserByUsername(ctx, "alice")
		if err == nil || errors.Is(err, models.ErrNotFound) {
			t.Errorf("expected a storage error, got %v", err)
		}
	})
}

func TestTrackRepositoryErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("Like Missing Track", func(t *testing.T) {
		repo := NewLikeRepository(setupTestDB(t))

		err := repo.Create(ctx, models.NewLikedSong(0, "alice", models.Track{Name: "no id"}))
		if !errors.Is(err, models.ErrMissingTrack) {
			t.Errorf("expected ErrMissingTrack, got %v", err)
		}
	})

	t.Run("Download Missing Username", func(t *testing.T) {
		repo := NewDownloadRepository(setupTestDB(t))

		err := repo.Create(ctx, models.NewDownload(0, "", testTrack("t1", "First")))
		if !errors.Is(err, models.ErrMissingUsername) {
			t.Errorf("expected ErrMissingUsername, got %v", err)
		}
	})

	t.Run("History Missing Query", func(t *testing.T) {
		repo := NewHistoryRepository(setupTestDB(t))

		err := repo.Create(ctx, models.NewSearchRecord(0, "alice", ""))
		if !errors.Is(err, models.ErrMissingQuery) {
			t.Errorf("expected ErrMissingQuery, got %v", err)
		}
	})
}

func TestPlaylistRepositoryErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("Create", func(t *testing.T) {
		t.Run("MissingName", func(t *testing.T) {
			repo := NewPlaylistRepository(setupTestDB(t))

			if err := repo.Create(ctx, models.NewPlaylist(0, "alice", "")); !errors.Is(err, models.ErrMissingName) {
				t.Errorf("expected ErrMissingName, got %v", err)
			}
		})

		t.Run("DuplicateName", func(t *testing.T) {
			repo := NewPlaylistRepository(setupTestDB(t))

			if err := repo.Create(ctx, models.NewPlaylist(0, "alice", "Mix")); err != nil {
				t.Fatalf("failed to create playlist: %v", err)
			}
			if err := repo.Create(ctx, models.NewPlaylist(0, "alice", "Mix")); !errors.Is(err, models.ErrConflict) {
				t.Errorf("expected ErrConflict, got %v", err)
			}
		})
	})

	t.Run("GetByName", func(t *testing.T) {
		t.Run("NotFound", func(t *testing.T) {
			repo := NewPlaylistRepository(setupTestDB(t))

			if _, err := repo.GetByName(ctx, "alice", "Missing"); !errors.Is(err, models.ErrNotFound) {
				t.Errorf("expected ErrNotFound, got %v", err)
			}
		})

		t.Run("Other Owner", func(t *testing.T) {
			repo := NewPlaylistRepository(setupTestDB(t))
			if err := repo.Create(ctx, models.NewPlaylist(0, "bob", "Mix")); err != nil {
				t.Fatalf("failed to create playlist: %v", err)
			}

			if _, err := repo.GetByName(ctx, "alice", "Mix"); !errors.Is(err, models.ErrNotFound) {
				t.Errorf("expected ErrNotFound for another user's playlist, got %v", err)
			}
		})
	})

	t.Run("PushTrack", func(t *testing.T) {
		t.Run("NotFound", func(t *testing.T) {
			repo := NewPlaylistRepository(setupTestDB(t))

			_, err := repo.PushTrack(ctx, "alice", "Missing", testTrack("t1", "First"))
			if !errors.Is(err, models.ErrNotFound) {
				t.Errorf("expected ErrNotFound, got %v", err)
			}
		})

		t.Run("DuplicateTrack", func(t *testing.T) {
			repo := NewPlaylistRepository(setupTestDB(t))
			if err := repo.Create(ctx, models.NewPlaylist(0, "alice", "Mix")); err != nil {
				t.Fatalf("failed to create playlist: %v", err)
			}
			if _, err := repo.PushTrack(ctx, "alice", "Mix", testTrack("t1", "First")); err != nil {
				t.Fatalf("failed to push track: %v", err)
			}

			_, err := repo.PushTrack(ctx, "alice", "Mix", testTrack("t1", "First"))
			if !errors.Is(err, models.ErrConflict) {
				t.Errorf("expected ErrConflict, got %v", err)
			}

			playlist, _ := repo.GetByName(ctx, "alice", "Mix")
			if len(playlist.Tracks()) != 1 {
				t.Errorf("expected playlist to keep 1 track, got %d", len(playlist.Tracks()))
			}
		})

		t.Run("MissingTrackID", func(t *testing.T) {
			repo := NewPlaylistRepository(setupTestDB(t))

			_, err := repo.PushTrack(ctx, "alice", "Mix", models.Track{})
			if !errors.Is(err, models.ErrMissingTrack) {
				t.Errorf("expected ErrMissingTrack, got %v", err)
			}
		})
	})
}
