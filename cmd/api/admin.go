package main

import (
	"fmt"

	"ecostore-api/internal/client"
	"ecostore-api/internal/repository"
	"ecostore-api/internal/service"

	"github.com/urfave/cli/v2"
)

func migrate(c *cli.Context) error {
	a, err := bootstrap(c)
	if err != nil {
		return err
	}
	defer a.close()

	if err := client.Migrate(a.db); err != nil {
		return err
	}

	a.logger.Info("schema migrated")
	return nil
}

func createUser(c *cli.Context) error {
	a, err := bootstrap(c)
	if err != nil {
		return err
	}
	defer a.close()

	if err := client.Migrate(a.db); err != nil {
		return err
	}

	users := service.NewUserService(repository.NewUserRepository(a.db), a.logger)
	user, err := users.CreateUser(c.Context, c.String("email"), c.String("name"))
	if err != nil {
		return err
	}

	fmt.Fprintf(c.App.Writer, "user_id=%d token=%s\n", user.ID, user.SessionToken)
	return nil
}

func issueSession(c *cli.Context) error {
	a, err := bootstrap(c)
	if err != nil {
		return err
	}
	defer a.close()

	userID := c.Uint("user-id")
	users := service.NewUserService(repository.NewUserRepository(a.db), a.logger)
	token, err := users.IssueSessionToken(c.Context, userID)
	if err != nil {
		return err
	}

	fmt.Fprintf(c.App.Writer, "user_id=%d token=%s\n", userID, token)
	return nil
}
