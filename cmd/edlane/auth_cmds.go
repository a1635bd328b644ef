package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/edlane/edlane-lms/internal/api"
	"github.com/edlane/edlane-lms/internal/authstate"
)

func loginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and persist the session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			v := viperForCmd(cmd)

			in := bufio.NewReader(cmd.InOrStdin())
			fmt.Fprint(cmd.OutOrStdout(), "username: ")
			username, err := in.ReadString('\n')
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), "password: ")
			password, err := in.ReadString('\n')
			if err != nil {
				return err
			}
			username = strings.TrimSpace(username)
			password = strings.TrimRight(password, "\r\n")

			client := api.NewClient(v.GetString("base-url"), "")
			res, err := client.Login(cmd.Context(), username, password)
			if err != nil {
				return err
			}
			path, err := authstate.DefaultPath()
			if err != nil {
				return err
			}
			sess := authstate.Session{Token: res.Token, UserID: res.UserID, Name: res.Name, Role: res.Role}
			if err := authstate.Save(path, sess); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "signed in as %s (%s)\n", res.Name, res.Role)
			return nil
		},
	}
	return cmd
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the persisted session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := authstate.DefaultPath()
			if err != nil {
				return err
			}
			if err := authstate.Clear(path); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "signed out")
			return nil
		},
	}
}

func whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in identity",
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess, _, err := requireSession(cmd)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%s), id %s\n", sess.Name, sess.Role, sess.UserID)
			return nil
		},
	}
}
