package cli

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/yungbote/gymcoach/internal/domain/foodscan"
	"github.com/yungbote/gymcoach/internal/domain/meal"
	"github.com/yungbote/gymcoach/internal/domain/profile"
	"github.com/yungbote/gymcoach/internal/domain/workout"
	"github.com/yungbote/gymcoach/internal/gateway"
	"github.com/yungbote/gymcoach/internal/render"
)

const usage = `usage: coachctl [flags] <command> [args]

commands:
  meal               generate a meal plan
  workout            generate a workout plan
  plan               generate both plans concurrently
  scan <image>       analyze a food photo
  chat <message...>  ask the coach a question

flags:
`

// Gateway is the subset of *gateway.Client the CLI drives.
type Gateway interface {
	GenerateMealPlan(ctx context.Context, p *profile.UserProfile) (meal.Plan, error)
	GenerateWorkoutPlan(ctx context.Context, p *profile.UserProfile) (workout.Plan, error)
	ScanFood(ctx context.Context, u gateway.Upload, c gateway.Constraints) (foodscan.Analysis, error)
	SendMessage(ctx context.Context, text string) (string, error)
	Constraints() gateway.Constraints
}

type Command struct {
	Gateway Gateway
	Stdout  io.Writer
	Stderr  io.Writer

	fmt *render.TextFormatter
}

// Run parses args and executes one command. The return value is the process
// exit code.
func (c *Command) Run(ctx context.Context, args []string) int {
	c.fmt = render.NewTextFormatter()

	fs := flag.NewFlagSet("coachctl", flag.ContinueOnError)
	fs.SetOutput(c.Stderr)
	profilePath := fs.String("profile", "profile.yaml", "profile file (.yaml, .yml or .json)")
	fs.Usage = func() {
		fmt.Fprint(c.Stderr, usage)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return 2
	}

	var err error
	switch cmd, rest := fs.Arg(0), fs.Args()[1:]; cmd {
	case "meal":
		err = c.meal(ctx, *profilePath)
	case "workout":
		err = c.workout(ctx, *profilePath)
	case "plan":
		err = c.plan(ctx, *profilePath)
	case "scan":
		if len(rest) != 1 {
			fs.Usage()
			return 2
		}
		err = c.scan(ctx, rest[0])
	case "chat":
		err = c.chat(ctx, strings.Join(rest, " "))
	default:
		fmt.Fprintf(c.Stderr, "unknown command %q\n", cmd)
		fs.Usage()
		return 2
	}
	if err != nil {
		fmt.Fprintln(c.Stderr, describe(err))
		return 1
	}
	return 0
}

func (c *Command) meal(ctx context.Context, path string) error {
	p, err := LoadProfile(path)
	if err != nil {
		return err
	}
	plan, err := c.Gateway.GenerateMealPlan(ctx, &p)
	if err != nil {
		return err
	}
	fmt.Fprint(c.Stdout, c.fmt.MealPlan(plan))
	return nil
}

func (c *Command) workout(ctx context.Context, path string) error {
	p, err := LoadProfile(path)
	if err != nil {
		return err
	}
	plan, err := c.Gateway.GenerateWorkoutPlan(ctx, &p)
	if err != nil {
		return err
	}
	fmt.Fprint(c.Stdout, c.fmt.WorkoutPlan(plan))
	return nil
}

// plan issues both generations at once. Either failure cancels the other.
func (c *Command) plan(ctx context.Context, path string) error {
	p, err := LoadProfile(path)
	if err != nil {
		return err
	}
	var (
		mp meal.Plan
		wp workout.Plan
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		mp, err = c.Gateway.GenerateMealPlan(gctx, &p)
		return err
	})
	g.Go(func() error {
		var err error
		wp, err = c.Gateway.GenerateWorkoutPlan(gctx, &p)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}
	fmt.Fprint(c.Stdout, c.fmt.MealPlan(mp))
	fmt.Fprintln(c.Stdout)
	fmt.Fprint(c.Stdout, c.fmt.WorkoutPlan(wp))
	return nil
}

func (c *Command) scan(ctx context.Context, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	u := gateway.Upload{Filename: filepath.Base(path), Data: data}
	a, err := c.Gateway.ScanFood(ctx, u, c.Gateway.Constraints())
	if err != nil {
		return err
	}
	fmt.Fprint(c.Stdout, c.fmt.FoodAnalysis(a))
	return nil
}

func (c *Command) chat(ctx context.Context, text string) error {
	answer, err := c.Gateway.SendMessage(ctx, text)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.Stdout, answer)
	return nil
}

// describe keeps validation messages and otherwise reports the failure kind
// next to the generic message.
func describe(err error) string {
	var fe profile.FieldErrors
	if errors.As(err, &fe) {
		return fe.Error()
	}
	var pe *os.PathError
	if errors.As(err, &pe) {
		return err.Error()
	}
	kind := gateway.Kind(err)
	if kind == gateway.KindInvalidInput {
		return gateway.UserMessage(err)
	}
	return fmt.Sprintf("%s (%s: %v)", gateway.GenericFailure, kind, err)
}

// LoadProfile reads a profile file and validates it.
func LoadProfile(path string) (profile.UserProfile, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return profile.UserProfile{}, err
	}
	var p profile.UserProfile
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = json.Unmarshal(b, &p)
	default:
		err = yaml.Unmarshal(b, &p)
	}
	if err != nil {
		return profile.UserProfile{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return profile.DraftFrom(p).Build()
}
