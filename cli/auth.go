package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"invoicegen-cli/session"
	"invoicegen-cli/validation"
)

func (e *env) signupCommand() *cli.Command {
	return &cli.Command{
		Name:  "signup",
		Usage: "register a new account",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "name", Usage: "user name", Required: true},
			&cli.StringFlag{Name: "password", Required: true},
			&cli.StringFlag{Name: "email", Required: true},
			&cli.StringFlag{Name: "contact", Usage: "10-digit contact number", Required: true},
			&cli.StringFlag{Name: "company", Usage: "company name", Required: true},
			&cli.StringFlag{Name: "logo", Usage: "path to a logo image (optional)"},
		},
		Action: func(c *cli.Context) error {
			form := validation.SignupForm{
				UserName:    c.String("name"),
				Password:    c.String("password"),
				Email:       c.String("email"),
				ContactNo:   c.String("contact"),
				CompanyName: c.String("company"),
			}

			var logo []byte
			logoName := ""
			if path := c.String("logo"); path != "" {
				data, err := os.ReadFile(path)
				if err != nil {
					return cli.Exit(fmt.Sprintf("could not read logo: %v", err), 1)
				}
				logo = data
				logoName = path
			}

			res := e.client.Signup(c.Context, form, logo, logoName)
			if !res.Success {
				return cli.Exit(res.Message, 1)
			}
			fmt.Println("SignUp Successful! You can now login.")
			return nil
		},
	}
}

func (e *env) loginCommand() *cli.Command {
	return &cli.Command{
		Name:  "login",
		Usage: "authenticate and store the session",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "email", Required: true},
			&cli.StringFlag{Name: "password", Required: true},
		},
		Action: func(c *cli.Context) error {
			res := e.client.Login(c.Context, c.String("email"), c.String("password"))
			if !res.Success {
				return cli.Exit(res.Message, 1)
			}
			if res.Token == "" {
				return cli.Exit("login succeeded but no token was returned", 1)
			}
			fmt.Printf("Welcome, %s\n", res.UserName)
			return nil
		},
	}
}

func (e *env) logoutCommand() *cli.Command {
	return &cli.Command{
		Name:  "logout",
		Usage: "clear the stored session",
		Action: func(c *cli.Context) error {
			res := e.client.Logout()
			if !res.Success {
				return cli.Exit(res.Message, 1)
			}
			fmt.Println("Logged out.")
			return nil
		},
	}
}

func (e *env) whoamiCommand() *cli.Command {
	return &cli.Command{
		Name:  "whoami",
		Usage: "show the current session",
		Action: func(c *cli.Context) error {
			profile := e.store.Profile()
			token := e.store.Token()
			if profile == nil || token == "" {
				return cli.Exit("not logged in", 1)
			}
			fmt.Printf("%s <%s>\n", profile.UserName, profile.Email)
			if session.TokenExpired(token) {
				fmt.Println("Token has expired; please login again.")
			}
			return nil
		},
	}
}

// errNotLoggedIn is a friendlier gate than the backend's 401 for
// commands that cannot possibly succeed without a session.
var errNotLoggedIn = errors.New("not logged in; run `invoicegen login` first")
