package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/pangbo13/SJTU-Canvas-Helper/internal/config"
)

// newLoginCmd groups the three login flows.
func newLoginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate against one of the services",
	}

	cmd.AddCommand(newLoginCanvasCmd())
	cmd.AddCommand(newLoginVideoCmd())
	cmd.AddCommand(newLoginJBoxCmd())

	return cmd
}

// newLoginCanvasCmd validates a caller-supplied bearer token with a cheap
// who-am-I call and stores it.
func newLoginCanvasCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "canvas",
		Short: "Store and validate a Canvas access token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			token, err := promptSecret("Canvas access token: ")
			if err != nil {
				return err
			}

			cli, err := newClient()
			if err != nil {
				return err
			}

			me, err := cli.Canvas.Me(cmd.Context(), token)
			if err != nil {
				return fmt.Errorf("token validation failed: %w", err)
			}

			cfg.Token = token
			if err := config.Save(configPath(), cfg); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "logged in as %s (%d)\n", me.Name, me.ID)

			return nil
		},
	}
}

// newLoginVideoCmd runs the express-login relay: session UUID from the
// profile page, UUID for the identity provider cookie, cookie for the video
// platform session.
func newLoginVideoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "video",
		Short: "Log in to the course video platform",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cli, err := newClient()
			if err != nil {
				return err
			}

			ctx := cmd.Context()

			authCookie := cfg.JAAuthCookie
			if authCookie == "" {
				sessionUUID, err := cli.Video.SessionUUID(ctx)
				if err != nil {
					return err
				}

				value, err := cli.Video.ExpressLogin(ctx, sessionUUID)
				if err != nil {
					return err
				}

				authCookie = "JAAuthCookie=" + value
			}

			cookies, err := cli.Video.Login(ctx, authCookie)
			if err != nil {
				return err
			}

			cfg.JAAuthCookie = authCookie
			cfg.VideoCookies = cookies

			if err := config.Save(configPath(), cfg); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "video platform login succeeded")

			return nil
		},
	}
}

// newLoginJBoxCmd exchanges the identity provider cookie for a JBox user
// token.
func newLoginJBoxCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "jbox",
		Short: "Log in to JBox",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cfg.JAAuthCookie == "" {
				return fmt.Errorf("no identity provider cookie; run \"login video\" first")
			}

			cli, err := newClient()
			if err != nil {
				return err
			}

			token, err := cli.JBox.Login(cmd.Context(), cfg.JAAuthCookie)
			if err != nil {
				return err
			}

			cfg.JBoxUserToken = token
			if err := config.Save(configPath(), cfg); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "jbox login succeeded")

			return nil
		},
	}
}

// promptSecret reads a line without echo when stdin is a terminal.
func promptSecret(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)

	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		secret, err := term.ReadPassword(fd)

		fmt.Fprintln(os.Stderr)

		if err != nil {
			return "", fmt.Errorf("reading secret: %w", err)
		}

		return strings.TrimSpace(string(secret)), nil
	}

	var line string
	if _, err := fmt.Fscanln(os.Stdin, &line); err != nil {
		return "", fmt.Errorf("reading secret: %w", err)
	}

	return strings.TrimSpace(line), nil
}
