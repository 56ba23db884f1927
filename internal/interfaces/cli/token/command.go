// Package token issues access tokens for operators and local testing, and
// can seed the actor the token is issued to.
package token

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/deskhub/deskhub/internal/domain/directory"
	"github.com/deskhub/deskhub/internal/infrastructure/auth"
	"github.com/deskhub/deskhub/internal/infrastructure/database"
	"github.com/deskhub/deskhub/internal/infrastructure/repository"
	"github.com/deskhub/deskhub/internal/interfaces/cli/bootstrap"
	"github.com/deskhub/deskhub/internal/shared/constants"
)

var (
	env        string
	configPath string
	actorID    uint
	admin      bool
	seed       bool
	username   string
	fullName   string
	role       string
	userType   string
	teamID     uint
	entityID   uint
	password   string
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue an access token",
		Long: `Issue a signed access token for an existing actor (--actor), for the
back-office admin (--admin), or for a new actor created with --seed.`,
		RunE: run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")
	cmd.Flags().UintVar(&actorID, "actor", 0, "Actor ID to issue the token for")
	cmd.Flags().BoolVar(&admin, "admin", false, "Issue an admin token")
	cmd.Flags().BoolVar(&seed, "seed", false, "Create the actor first")
	cmd.Flags().StringVar(&username, "username", "", "Username of the seeded actor")
	cmd.Flags().StringVar(&fullName, "name", "", "Display name of the seeded actor")
	cmd.Flags().StringVar(&role, "role", string(directory.RoleTeamMember), "Role of the seeded actor")
	cmd.Flags().StringVar(&userType, "type", string(directory.UserTypeProd), "User type of the seeded actor (PROD, SUPPORT)")
	cmd.Flags().UintVar(&teamID, "team", 0, "Team of the seeded actor")
	cmd.Flags().UintVar(&entityID, "entity", 0, "Entity of the seeded actor")
	cmd.Flags().StringVar(&password, "password", "", "Password of the seeded actor (prompted when empty)")

	cmd.MarkFlagsMutuallyExclusive("actor", "admin", "seed")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	if !admin && !seed && actorID == 0 {
		return errors.New("one of --actor, --admin or --seed is required")
	}

	boot, err := bootstrap.Init(env, configPath)
	if err != nil {
		return err
	}
	defer boot.Close()

	jwtSvc := auth.NewJWTService(boot.Config.Auth.JWT.Secret, boot.Config.Auth.JWT.AccessExpMinutes)

	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()

	id, claimRole := actorID, ""
	switch {
	case admin:
		id, claimRole = 0, constants.RoleAdmin
	case seed:
		actor, err := seedActor(ctx, boot)
		if err != nil {
			return err
		}
		id, claimRole = actor.ID(), actor.Role().String()
		fmt.Fprintf(cmd.ErrOrStderr(), "Created actor %d (%s)\n", id, actor.Username())
	default:
		actor, err := repository.NewActorRepository(database.Get(), boot.Log).GetByID(ctx, actorID)
		if err != nil {
			return fmt.Errorf("failed to load actor %d: %w", actorID, err)
		}
		claimRole = actor.Role().String()
	}

	signed, exp, err := jwtSvc.Generate(id, claimRole)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "Expires at %s\n", exp.Format(time.RFC3339))
	fmt.Fprintln(cmd.OutOrStdout(), signed)
	return nil
}

func seedActor(ctx context.Context, boot *bootstrap.Env) (*directory.Actor, error) {
	r, err := directory.ParseRole(role)
	if err != nil {
		return nil, err
	}

	params := directory.ActorParams{
		Name:     fullName,
		Username: username,
		Role:     r,
		UserType: directory.UserType(strings.ToUpper(userType)),
	}
	if teamID != 0 {
		params.TeamID = &teamID
	}
	if entityID != 0 {
		params.EntityID = &entityID
	}

	actor, err := directory.NewActor(params)
	if err != nil {
		return nil, err
	}

	pw := password
	if pw == "" {
		if pw, err = promptPassword(); err != nil {
			return nil, err
		}
	}
	hash, err := auth.NewBcryptPasswordHasher(boot.Config.Auth.BcryptCost).Hash(pw)
	if err != nil {
		return nil, err
	}
	actor.SetPasswordHash(hash)

	if err := repository.NewActorRepository(database.Get(), boot.Log).Create(ctx, actor); err != nil {
		return nil, fmt.Errorf("failed to create actor: %w", err)
	}
	return actor, nil
}

func promptPassword() (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", errors.New("--password is required when stdin is not a terminal")
	}
	fmt.Fprint(os.Stderr, "Password: ")
	b, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	if len(b) == 0 {
		return "", errors.New("password cannot be empty")
	}
	return string(b), nil
}
