package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	hotel_client "github.com/hoteldesk/go-hotel-client"
	"github.com/hoteldesk/go-hotel-client/core"
	"github.com/hoteldesk/go-hotel-client/internal/client"
	"github.com/hoteldesk/go-hotel-client/internal/database"
	"github.com/hoteldesk/go-hotel-client/internal/devserver"
	log "github.com/hoteldesk/go-hotel-client/internal/logging"
	"github.com/hoteldesk/go-hotel-client/internal/tui"
	"github.com/hoteldesk/go-hotel-client/resources/schemas"
)

// openStore is replaced in tests.
var openStore = func() (*database.Service, error) {
	return database.New(), nil
}

// connection is the backend the commands talk to.
type connection struct {
	rest      *hotel_client.HotelRest
	profileID uint
	name      string
}

// connect prefers HOTELIX_ENDPOINT over the active profile.
func connect(db *database.Service) (*connection, error) {
	if endpoint := os.Getenv("HOTELIX_ENDPOINT"); endpoint != "" {
		config := &hotel_client.Config{
			BaseURL:     endpoint,
			Credentials: hotel_client.NewStaticCredentials(os.Getenv("HOTELIX_TOKEN")),
			Logger:      log.GetGlobalLogger(),

			BeforeRequestFn: client.BeforeRequestFnCallback,
			AfterRequestFn:  client.AfterRequestFnCallback,
		}
		if raw := os.Getenv("HOTELIX_TIMEOUT"); raw != "" {
			timeout, err := time.ParseDuration(raw)
			if err != nil {
				return nil, fmt.Errorf("invalid HOTELIX_TIMEOUT: %w", err)
			}
			config.Timeout = &timeout
		}
		rest, err := hotel_client.NewHotelRest(config)
		if err != nil {
			return nil, err
		}
		return &connection{rest: rest, name: endpoint}, nil
	}

	profile, err := db.GetActiveProfile()
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, errors.New("no active profile: run `hotelix profile add` or set HOTELIX_ENDPOINT")
	}
	rest, err := client.NewRestService(db).GetOrCreateClient(profile)
	if err != nil {
		return nil, err
	}
	return &connection{rest: rest, profileID: profile.ID, name: profile.ProfileName()}, nil
}

func runTUI(ctx context.Context) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	conn, err := connect(db)
	if err != nil {
		return err
	}
	return tui.Run(tui.Options{
		Ctx:         ctx,
		Rest:        conn.rest,
		Store:       db,
		ProfileID:   conn.profileID,
		ProfileName: conn.name,
	})
}

func runList(ctx context.Context, w io.Writer, args []string) error {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	fs.SetOutput(w)
	cached := fs.Bool("cached", false, "print the last snapshot instead of fetching")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: hotelix list [--cached] <%s|%s|%s>",
			schemas.ResourceRooms, schemas.ResourceBookings, schemas.ResourceFoodOrders)
	}
	schema, ok := schemas.ByResource(fs.Arg(0))
	if !ok {
		return fmt.Errorf("unknown resource %q", fs.Arg(0))
	}

	db, err := openStore()
	if err != nil {
		return err
	}
	conn, err := connect(db)
	if err != nil {
		return err
	}

	var records core.RecordSet
	if *cached {
		var savedAt time.Time
		records, savedAt, err = db.LoadSnapshot(conn.profileID, schema.Resource)
		if err != nil {
			return err
		}
		if savedAt.IsZero() {
			fmt.Fprintf(w, "no snapshot of %s yet\n", schema.Resource)
			return nil
		}
		fmt.Fprintf(w, "%s as of %s\n", schema.Title, savedAt.Local().Format(time.DateTime))
	} else {
		resource, err := conn.rest.GetResource(schema.Resource)
		if err != nil {
			return err
		}
		if records, err = resource.ListWithContext(ctx); err != nil {
			return err
		}
		if err := db.SaveSnapshot(conn.profileID, schema.Resource, records); err != nil {
			log.Warn("failed to save snapshot", zap.String("resource", schema.Resource), zap.Error(err))
		}
	}
	if records.Empty() {
		fmt.Fprintf(w, "no %s\n", strings.ToLower(schema.Title))
		return nil
	}
	columns := []string{"id"}
	for _, field := range schema.Fields {
		columns = append(columns, field.Name)
	}
	fmt.Fprintln(w, records.Table(columns...))
	return nil
}

func runProfile(w io.Writer, args []string) error {
	if len(args) == 0 {
		return errors.New("usage: hotelix profile add|use|list|rm")
	}
	db, err := openStore()
	if err != nil {
		return err
	}
	switch args[0] {
	case "add":
		return profileAdd(db, w, args[1:])
	case "use":
		if len(args) != 2 {
			return errors.New("usage: hotelix profile use <alias>")
		}
		profile, err := findProfile(db, args[1])
		if err != nil {
			return err
		}
		if err := db.SetActiveProfile(profile.ID); err != nil {
			return err
		}
		fmt.Fprintf(w, "active profile: %s\n", profile.ProfileName())
		return nil
	case "list":
		profiles, err := db.GetAllProfiles()
		if err != nil {
			return err
		}
		for _, p := range profiles {
			marker := " "
			if p.Active {
				marker = "*"
			}
			fmt.Fprintf(w, "%s %s\n", marker, p.ProfileName())
		}
		return nil
	case "rm":
		if len(args) != 2 {
			return errors.New("usage: hotelix profile rm <alias>")
		}
		profile, err := findProfile(db, args[1])
		if err != nil {
			return err
		}
		client.NewRestService(db).RemoveClient(profile)
		return db.DeleteProfile(profile.ID)
	default:
		return fmt.Errorf("unknown profile command %q", args[0])
	}
}

func profileAdd(db *database.Service, w io.Writer, args []string) error {
	fs := flag.NewFlagSet("profile add", flag.ContinueOnError)
	fs.SetOutput(w)
	profile := &database.Profile{}
	fs.StringVar(&profile.Alias, "alias", "", "profile name (required)")
	fs.StringVar(&profile.BaseURL, "url", "", "backend address, e.g. http://localhost:8080 (required)")
	fs.StringVar(&profile.Username, "user", "", "login user")
	fs.StringVar(&profile.Password, "password", "", "login password")
	fs.StringVar(&profile.Token, "token", "", "bearer token to use instead of a login")
	fs.BoolVar(&profile.SSLVerify, "ssl-verify", false, "verify TLS certificates")
	activate := fs.Bool("activate", true, "make the new profile active")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if profile.Token == "" && !profile.CanLogin() {
		return errors.New("either --token or --user and --password must be set")
	}
	create := db.CreateProfile
	if *activate {
		create = db.CreateProfileAsActive
	}
	if err := create(profile); err != nil {
		return err
	}
	fmt.Fprintf(w, "added profile %s\n", profile.ProfileName())
	return nil
}

func findProfile(db *database.Service, alias string) (*database.Profile, error) {
	profile, err := db.GetProfileByAlias(alias)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, fmt.Errorf("profile %q not found", alias)
	}
	return profile, nil
}

func runServeDev(ctx context.Context) error {
	cfg, err := devserver.ConfigFromEnv()
	if err != nil {
		return err
	}
	gin.SetMode(gin.ReleaseMode)
	server, err := devserver.New(cfg, log.GetGlobalLogger())
	if err != nil {
		return err
	}
	fmt.Printf("serving the hotel API on http://%s (user %q unless HOTELIX_DEV_USERS is set)\n", cfg.Addr, devserver.DefaultUser)
	return server.Run(ctx)
}
