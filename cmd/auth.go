package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/desertthunder/mymusic/internal/auth"
	"github.com/desertthunder/mymusic/internal/shared"
	"github.com/urfave/cli/v3"
)

// credentials requires both flags to be given, from the command line or the environment. Empty
// values are passed through: the credential manager decides whether they are acceptable.
func credentials(cmd *cli.Command) (string, string, error) {
	if !cmd.IsSet("username") || !cmd.IsSet("password") {
		return "", "", fmt.Errorf("%w: --username and --password are required", shared.ErrMissingArgument)
	}
	return cmd.String("username"), cmd.String("password"), nil
}

// session logs in with the command's credentials and returns the resulting session.
func (r *Runner) session(ctx context.Context, cmd *cli.Command) (auth.Session, error) {
	if r.manager == nil {
		return auth.Session{}, fmt.Errorf("%w: credential manager not initialized", shared.ErrServiceUnavailable)
	}

	username, password, err := credentials(cmd)
	if err != nil {
		return auth.Session{}, err
	}

	session, err := r.manager.Login(ctx, username, password)
	if err != nil {
		r.logger.Debug("login rejected", "user", username)
		return auth.Session{}, err
	}
	return session, nil
}

// Signup creates an account. Password policy messages are shown as-is.
func (r *Runner) Signup(ctx context.Context, cmd *cli.Command) error {
	if r.manager == nil {
		return fmt.Errorf("%w: credential manager not initialized", shared.ErrServiceUnavailable)
	}

	username, password, err := credentials(cmd)
	if err != nil {
		return err
	}

	if err := r.manager.SignUp(ctx, username, password); err != nil {
		var vErr *auth.ValidationError
		if errors.As(err, &vErr) {
			r.writePlain("%s\n", r.palette.Err(vErr.Message))
		}
		return err
	}

	r.logger.Info("account created", "user", username)
	return r.writePlain("%s\n", r.palette.OK("Account created successfully! Please log in."))
}

// Login verifies credentials without doing anything else.
func (r *Runner) Login(ctx context.Context, cmd *cli.Command) error {
	session, err := r.session(ctx, cmd)
	if err != nil {
		return err
	}
	return r.writePlain("%s\n", r.palette.OK("Logged in as "+session.Username()))
}
