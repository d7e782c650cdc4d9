package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/nfrund/healthtrack/internal/domain"
	"github.com/spf13/cobra"
)

// readPassword takes the first line of in when --password was not given.
func readPassword(cmd *cobra.Command, flag string) (string, error) {
	if flag != "" {
		return flag, nil
	}
	fmt.Fprint(cmd.ErrOrStderr(), "Password: ")
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	password := strings.TrimRight(line, "\r\n")
	if password == "" {
		return "", errors.New("password is required")
	}
	return password, nil
}

func (c *cli) loginCmd() *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and keep the session for later commands",
		Example: `  healthtrack login --email ayu@example.com
  echo "$PASSWORD" | healthtrack login --email ayu@example.com`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			acc, err := c.account(cmd)
			if err != nil {
				return err
			}
			if u := acc.Session.State().User; u != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "Already signed in as %s\n", u.Email)
				return nil
			}
			pw, err := readPassword(cmd, password)
			if err != nil {
				return err
			}
			user, err := acc.Session.Login(cmd.Context(), email, pw)
			if err != nil {
				return errors.New(domain.AuthMessage(err, domain.DefaultLoginMessage))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s <%s>\n", user.Name, user.Email)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password (read from stdin when omitted)")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func (c *cli) registerCmd() *cobra.Command {
	var name, email, password string
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and sign in with it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			acc, err := c.account(cmd)
			if err != nil {
				return err
			}
			pw, err := readPassword(cmd, password)
			if err != nil {
				return err
			}
			if len(pw) < 6 {
				return errors.New("password must be at least 6 characters")
			}
			user, err := acc.Session.Register(cmd.Context(), email, pw, name)
			if err != nil {
				return errors.New(domain.AuthMessage(err, domain.DefaultRegisterMessage))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Welcome, %s! Finish your profile on the web to unlock the dashboard.\n", user.Name)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password (read from stdin when omitted)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func (c *cli) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			acc, err := c.account(cmd)
			if err != nil {
				return err
			}
			if err := acc.Session.Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Signed out")
			return nil
		},
	}
}

func (c *cli) whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			acc, err := c.signedIn(cmd)
			if err != nil {
				return err
			}
			u := acc.Session.State().User
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s <%s>\n", u.Name, u.Email)
			if u.Onboarded() {
				bmi := domain.BMI(*u.WeightKg, *u.HeightCm)
				fmt.Fprintf(out, "Height %.0f cm, weight %.1f kg, BMI %.1f (%s)\n", *u.HeightCm, *u.WeightKg, bmi, domain.BMICategory(bmi))
			} else {
				fmt.Fprintln(out, "Profile incomplete: height and weight are not set")
			}
			return nil
		},
	}
}
