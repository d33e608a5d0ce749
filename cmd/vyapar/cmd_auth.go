package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/vyapar/internal/guard"
)

var (
	loginUsername string
	loginPassword string
	loginRemember bool
)

// vyapar auth:login
var authLoginCmd = &cobra.Command{
	Use:   "auth:login",
	Short: "Authenticate against the backend and store the session",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := boot()
		if err != nil {
			return err
		}

		// Skip the form when a valid session already exists.
		if res := c.guard.CheckLogin(cmd.Context()); res.Decision == guard.RedirectLogin {
			if admin := c.sessions.CurrentAdmin(); admin != nil {
				fmt.Printf("Already logged in as %s.\n", admin.Username)
			} else {
				fmt.Println("Already logged in.")
			}
			return nil
		}

		username, password := loginUsername, loginPassword
		if username == "" {
			if username, err = promptLine("Username"); err != nil {
				return err
			}
		}
		if password == "" {
			if password, err = promptLine("Password"); err != nil {
				return err
			}
		}

		admin, err := c.auth.Login(cmd.Context(), username, password, loginRemember)
		if err != nil {
			return err
		}
		fmt.Printf("Logged in as %s (%s).\n", admin.Username, admin.Role)
		return nil
	},
}

// vyapar auth:logout
var authLogoutCmd = &cobra.Command{
	Use:   "auth:logout",
	Short: "Clear the stored session",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := boot()
		if err != nil {
			return err
		}
		if err := c.auth.Logout(); err != nil {
			return err
		}
		fmt.Println("Logged out.")
		return nil
	},
}

// vyapar auth:whoami
var authWhoamiCmd = &cobra.Command{
	Use:   "auth:whoami",
	Short: "Show the authenticated admin",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := bootProtected(cmd.Context())
		if err != nil {
			return err
		}

		admin, err := c.auth.Me(cmd.Context())
		if err != nil {
			// Offline: fall back to the cached identity.
			admin = c.sessions.CurrentAdmin()
			if admin == nil {
				return err
			}
		}
		fmt.Printf("%s (%s), admin id %d\n", admin.Username, admin.Role, admin.ID)
		return nil
	},
}

var (
	currentPassword string
	newPassword     string
)

// vyapar auth:change-password
var authChangePasswordCmd = &cobra.Command{
	Use:   "auth:change-password",
	Short: "Change the admin password",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := bootProtected(cmd.Context())
		if err != nil {
			return err
		}

		current, next := currentPassword, newPassword
		if current == "" {
			if current, err = promptLine("Current password"); err != nil {
				return err
			}
		}
		if next == "" {
			if next, err = promptLine("New password"); err != nil {
				return err
			}
			confirm, err := promptLine("Repeat new password")
			if err != nil {
				return err
			}
			if confirm != next {
				return errors.New("passwords do not match")
			}
		}

		if err := c.auth.ChangePassword(cmd.Context(), current, next); err != nil {
			return err
		}
		fmt.Println("Password changed.")
		return nil
	},
}

func init() {
	authLoginCmd.Flags().StringVarP(&loginUsername, "username", "u", "", "admin username")
	authLoginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "admin password (prompted when omitted)")
	authLoginCmd.Flags().BoolVar(&loginRemember, "remember", false, "keep the session across restarts")

	authChangePasswordCmd.Flags().StringVar(&currentPassword, "current", "", "current password")
	authChangePasswordCmd.Flags().StringVar(&newPassword, "new", "", "new password (min 8 characters)")
}
