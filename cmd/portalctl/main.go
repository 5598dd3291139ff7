// portalctl drives the portal client store from the command line: sign in,
// browse the directory, manage events and announcements, move documents.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"text/tabwriter"
	"time"

	"portal/internal/domain/announcements"
	"portal/internal/domain/documents"
	"portal/internal/domain/events"
	"portal/internal/domain/news"
	"portal/internal/platform/config"
	"portal/internal/store"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cfg := config.Load()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	slog.SetDefault(logger)

	st, err := store.New(cfg, logger)
	if err != nil {
		log.Fatalf("store setup failed: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout+5*time.Second)
	defer cancel()

	command := os.Args[1]
	args := os.Args[2:]

	// Everything except login reuses the persisted session.
	if command != "login" {
		if err := st.Session.Verify(ctx); err != nil && !st.Session.IsAuthenticated() {
			log.Fatalf("not signed in: %v", err)
		}
	}

	switch command {
	case "login":
		runLogin(ctx, st, args)
	case "logout":
		st.Session.Logout(ctx)
		fmt.Println("signed out")
	case "whoami":
		runWhoami(st)
	case "employees":
		runEmployees(ctx, st, args)
	case "events":
		runEvents(ctx, st, args)
	case "news":
		runNews(ctx, st, args)
	case "documents":
		runDocuments(ctx, st, args)
	case "announcements":
		runAnnouncements(ctx, st, args)
	case "export-directory":
		runExportDirectory(ctx, st, args)
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: portalctl <command> [flags]

commands:
  login -email <email> -password <password>
  logout
  whoami
  employees
  events [-create -title ... -type ... | -approve <id> | -delete <id>]
  news [-post -title ... -content ... -category ...]
  documents [-upload <path> -title ... | -download <id> -out <path> | -delete <id>]
  announcements [-post -title ... -content ... -from <RFC3339> -to <RFC3339>]
  export-directory [-out <path>]`)
}

func runLogin(ctx context.Context, st *store.Store, args []string) {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	_ = fs.Parse(args)

	if err := st.Session.Login(ctx, *email, *password); err != nil {
		log.Fatalf("login failed: %s", st.Session.Err())
	}
	user, _ := st.Session.User()
	fmt.Printf("signed in as %s (%s)\n", user.Name, st.Session.UserType())
}

func runWhoami(st *store.Store) {
	user, ok := st.Session.User()
	if !ok {
		fmt.Println("not signed in")
		return
	}
	fmt.Printf("%s <%s> role=%s type=%s\n", user.Name, user.Email, user.Role, st.Session.UserType())
}

func runEmployees(ctx context.Context, st *store.Store, _ []string) {
	items, err := st.Employees.Refresh(ctx)
	if err != nil {
		log.Fatalf("employees: %s", st.Employees.State().Err())
	}
	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tEMAIL\tPHONE\tJOINED")
	for _, e := range items {
		joined := ""
		if !e.DateOfJoining.IsZero() {
			joined = e.DateOfJoining.Format("2006-01-02")
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", e.FullName(), e.Email, e.PhoneNumber, joined)
	}
	_ = tw.Flush()
}

func runEvents(ctx context.Context, st *store.Store, args []string) {
	fs := flag.NewFlagSet("events", flag.ExitOnError)
	create := fs.Bool("create", false, "create an event")
	title := fs.String("title", "", "event title")
	description := fs.String("description", "", "event description")
	eventType := fs.String("type", "meeting", "event type")
	location := fs.String("location", "", "event location")
	start := fs.String("start", "", "start time (RFC3339)")
	end := fs.String("end", "", "end time (RFC3339)")
	approve := fs.String("approve", "", "approve the event with this id")
	remove := fs.String("delete", "", "delete the event with this id")
	_ = fs.Parse(args)

	switch {
	case *create:
		if !st.Session.CanManageEvents() {
			log.Fatal("events: only HR accounts can create events")
		}
		startTime, endTime := parseTimeFlag(*start), parseTimeFlag(*end)
		user, _ := st.Session.User()
		created, err := st.Events.Create(ctx, events.CreateEventInput{
			Title:       *title,
			Description: *description,
			EventType:   *eventType,
			Location:    *location,
			StartTime:   startTime,
			EndTime:     endTime,
			CreatedBy:   user.Name,
		})
		if err != nil {
			log.Fatalf("events: %s", st.Events.State().Err())
		}
		fmt.Printf("created event %s\n", created.ID)
	case *approve != "":
		approved, err := st.Events.Approve(ctx, *approve)
		if err != nil {
			log.Fatalf("events: %s", st.Events.State().Err())
		}
		fmt.Printf("approved event %s (status=%s)\n", approved.ID, approved.Status)
	case *remove != "":
		if err := st.Events.Delete(ctx, *remove); err != nil {
			log.Fatalf("events: %s", st.Events.State().Err())
		}
		fmt.Println("deleted")
	default:
		items, err := st.Events.Refresh(ctx)
		if err != nil {
			log.Fatalf("events: %s", st.Events.State().Err())
		}
		tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tTITLE\tTYPE\tSTATUS\tAPPROVED\tSTART")
		for _, e := range items {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%t\t%s\n",
				e.ID, e.Title, e.EventType, e.Status, e.IsApproved, e.StartTime.Format(time.RFC3339))
		}
		_ = tw.Flush()
	}
}

func runNews(ctx context.Context, st *store.Store, args []string) {
	fs := flag.NewFlagSet("news", flag.ExitOnError)
	post := fs.Bool("post", false, "publish a news item")
	title := fs.String("title", "", "news title")
	content := fs.String("content", "", "news body")
	category := fs.String("category", "general", "news category")
	imagePath := fs.String("image", "", "optional image file")
	_ = fs.Parse(args)

	if *post {
		user, _ := st.Session.User()
		input := news.CreateInput{
			Title:     *title,
			Content:   *content,
			NewsType:  *category,
			CreatedBy: user.Name,
		}
		if *imagePath != "" {
			data, err := os.ReadFile(*imagePath)
			if err != nil {
				log.Fatalf("news: read image: %v", err)
			}
			input.File = &news.Attachment{Name: *imagePath, Data: data}
		}
		created, err := st.News.Create(ctx, input)
		if err != nil {
			log.Fatalf("news: %s", st.News.State().Err())
		}
		fmt.Printf("published %s\n", created.ID)
		return
	}

	items, err := st.News.Refresh(ctx)
	if err != nil {
		log.Fatalf("news: %s", st.News.State().Err())
	}
	for _, n := range items {
		fmt.Printf("[%s] %s — %s\n", n.Category, n.Title, n.Author)
	}
}

func runDocuments(ctx context.Context, st *store.Store, args []string) {
	fs := flag.NewFlagSet("documents", flag.ExitOnError)
	upload := fs.String("upload", "", "path of the file to upload")
	title := fs.String("title", "", "document title")
	docType := fs.String("type", "general", "document type")
	download := fs.String("download", "", "document id to download")
	out := fs.String("out", "", "output path for download")
	remove := fs.String("delete", "", "document id to delete")
	_ = fs.Parse(args)

	switch {
	case *upload != "":
		data, err := os.ReadFile(*upload)
		if err != nil {
			log.Fatalf("documents: read file: %v", err)
		}
		user, _ := st.Session.User()
		created, err := st.Documents.Upload(ctx, documents.UploadInput{
			Title:        *title,
			DocumentType: *docType,
			UploadedByID: user.ID,
			FileName:     *upload,
			Data:         data,
		})
		if err != nil {
			log.Fatalf("documents: %s", st.Documents.State().Err())
		}
		fmt.Printf("uploaded %s\n", created.ID)
	case *download != "":
		data, _, err := st.Documents.Download(ctx, *download)
		if err != nil {
			log.Fatalf("documents: %s", st.Documents.State().Err())
		}
		target := *out
		if target == "" {
			target = *download
		}
		if err := os.WriteFile(target, data, 0o644); err != nil {
			log.Fatalf("documents: write: %v", err)
		}
		fmt.Printf("saved %d bytes to %s\n", len(data), target)
	case *remove != "":
		if err := st.Documents.Delete(ctx, *remove); err != nil {
			log.Fatalf("documents: %s", st.Documents.State().Err())
		}
		fmt.Println("deleted")
	default:
		items, err := st.Documents.Refresh(ctx)
		if err != nil {
			log.Fatalf("documents: %s", st.Documents.State().Err())
		}
		tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tTITLE\tTYPE\tUPLOADED")
		for _, d := range items {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", d.ID, d.Title, d.DocumentType, d.UploadedAt.Format("2006-01-02"))
		}
		_ = tw.Flush()
	}
}

func runAnnouncements(ctx context.Context, st *store.Store, args []string) {
	fs := flag.NewFlagSet("announcements", flag.ExitOnError)
	post := fs.Bool("post", false, "store a local announcement")
	title := fs.String("title", "", "announcement title")
	content := fs.String("content", "", "announcement body")
	from := fs.String("from", "", "valid from (RFC3339)")
	to := fs.String("to", "", "valid to (RFC3339)")
	_ = fs.Parse(args)

	if *post {
		user, _ := st.Session.User()
		created, err := st.Announcements.Create(ctx, announcements.CreateInput{
			Title:     *title,
			Content:   *content,
			CreatedBy: user.Name,
			ValidFrom: parseTimeFlag(*from),
			ValidTo:   parseTimeFlag(*to),
		})
		if err != nil {
			log.Fatalf("announcements: %s", st.Announcements.State().Err())
		}
		fmt.Printf("stored %s\n", created.ID)
		return
	}

	items, err := st.Announcements.Refresh(ctx)
	if err != nil {
		log.Fatalf("announcements: %s", st.Announcements.State().Err())
	}
	for _, a := range items {
		fmt.Printf("%s — %s\n", a.CreatedAt.Format("2006-01-02"), a.Title)
	}
}

func runExportDirectory(ctx context.Context, st *store.Store, args []string) {
	fs := flag.NewFlagSet("export-directory", flag.ExitOnError)
	out := fs.String("out", "directory.pdf", "output path")
	_ = fs.Parse(args)

	if _, err := st.Employees.Refresh(ctx); err != nil {
		log.Fatalf("export: %s", st.Employees.State().Err())
	}
	data, err := st.Employees.ExportPDF()
	if err != nil {
		log.Fatalf("export: %v", err)
	}
	if err := os.WriteFile(*out, data, 0o644); err != nil {
		log.Fatalf("export: write: %v", err)
	}
	fmt.Printf("wrote %s (%d bytes)\n", *out, len(data))
}

func parseTimeFlag(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		log.Fatalf("invalid time %q: %v", value, err)
	}
	return parsed
}
