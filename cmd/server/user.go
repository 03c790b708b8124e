package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mmynk/nutritrack/internal/service"
)

var (
	userEmail    string
	userName     string
	userPassword string
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage users",
}

var userCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Register a user",
	Long: `Register a user with an email, a display name and a password.

The password can also be given through the NUTRITRACK_PASSWORD environment
variable to keep it out of the shell history.

EXAMPLES:

  nutritrack user create --email ada@example.com --name Ada --password 'correct-horse'`,
	RunE: func(cmd *cobra.Command, args []string) error {
		password := userPassword
		if password == "" {
			password = os.Getenv("NUTRITRACK_PASSWORD")
		}
		res, err := application.Auth.Register(cmd.Context(), service.RegisterRequest{
			Email:    userEmail,
			Name:     userName,
			Password: password,
		})
		if err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}

		success := color.New(color.FgGreen)
		faint := color.New(color.Faint)
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n",
			success.Sprint("Created user"),
			res.User.Email,
			faint.Sprintf("(ID: %s)", res.User.ID))
		return nil
	},
}

func init() {
	userCreateCmd.Flags().StringVar(&userEmail, "email", "", "email address")
	userCreateCmd.Flags().StringVar(&userName, "name", "", "display name")
	userCreateCmd.Flags().StringVar(&userPassword, "password", "", "password (min 8 characters)")
	_ = userCreateCmd.MarkFlagRequired("email")
	_ = userCreateCmd.MarkFlagRequired("name")
	userCmd.AddCommand(userCreateCmd)
	rootCmd.AddCommand(userCmd)
}
