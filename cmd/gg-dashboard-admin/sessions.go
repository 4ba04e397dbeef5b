package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/redis/go-redis/v9"

	domainauth "github.com/guitarguru/gg-dashboard/internal/domain/auth"
)

// Key prefixes match the Redis adapters; the CLI reads the raw records
// directly so it works even when the app is down.
const (
	sessionKeyPrefix     = "session:"
	lessonCacheKeyPrefix = "lessons:"
)

const scanBatchSize = 200

type listSessionsOptions struct {
	Email string
	Limit int
}

type clearSessionsOptions struct {
	SessionID string
	Email     string
	All       bool
	DryRun    bool
	Yes       bool
}

type sessionRecord struct {
	Key     string
	Session domainauth.Session
	Corrupt bool
}

func runListSessions(ctx *commandContext, args []string) error {
	fs := flag.NewFlagSet("list-sessions", flag.ContinueOnError)
	opts := &listSessionsOptions{}
	fs.StringVar(&opts.Email, "email", "", "only show sessions for this email")
	fs.IntVar(&opts.Limit, "limit", 100, "maximum number of sessions to show")
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := connectRedis(ctx.Logger, &ctx.Config.Redis)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := closeRedis(client); cerr != nil {
			ctx.Logger.Error("close redis failed", "error", cerr)
		}
	}()

	records, err := loadSessions(ctx.Ctx, client, opts.Email)
	if err != nil {
		return err
	}
	if opts.Limit > 0 && len(records) > opts.Limit {
		records = records[:opts.Limit]
	}

	return printSessions(records)
}

func runClearSessions(ctx *commandContext, args []string) error {
	fs := flag.NewFlagSet("clear-sessions", flag.ContinueOnError)
	opts := &clearSessionsOptions{}
	fs.StringVar(&opts.SessionID, "session", "", "delete a single session by ID")
	fs.StringVar(&opts.Email, "email", "", "delete every session for this email")
	fs.BoolVar(&opts.All, "all", false, "delete every session record")
	fs.BoolVar(&opts.DryRun, "dry-run", false, "show what would be deleted without deleting")
	fs.BoolVar(&opts.Yes, "yes", false, "skip the confirmation prompt")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := validateClearSelector(opts); err != nil {
		return err
	}

	client, err := connectRedis(ctx.Logger, &ctx.Config.Redis)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := closeRedis(client); cerr != nil {
			ctx.Logger.Error("close redis failed", "error", cerr)
		}
	}()

	keys, err := selectSessionKeys(ctx.Ctx, client, opts)
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		return writef(os.Stdout, "No matching sessions.\n")
	}

	if opts.DryRun {
		return writef(os.Stdout, "Would delete %d session(s).\n", len(keys))
	}

	if !opts.Yes {
		confirmed, confirmErr := confirm(fmt.Sprintf("Delete %d session(s)?", len(keys)))
		if confirmErr != nil {
			return confirmErr
		}
		if !confirmed {
			return writef(os.Stdout, "Aborted.\n")
		}
	}

	if err := client.Del(ctx.Ctx, keys...).Err(); err != nil {
		return fmt.Errorf("delete sessions: %w", err)
	}
	return writef(os.Stdout, "Deleted %d session(s).\n", len(keys))
}

func runClearLessonCache(ctx *commandContext, args []string) error {
	fs := flag.NewFlagSet("clear-lesson-cache", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := connectRedis(ctx.Logger, &ctx.Config.Redis)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := closeRedis(client); cerr != nil {
			ctx.Logger.Error("close redis failed", "error", cerr)
		}
	}()

	keys, err := scanKeys(ctx.Ctx, client, lessonCacheKeyPrefix+"*")
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		return writef(os.Stdout, "Lesson cache is already empty.\n")
	}

	if err := client.Del(ctx.Ctx, keys...).Err(); err != nil {
		return fmt.Errorf("delete cache entries: %w", err)
	}
	return writef(os.Stdout, "Dropped %d cache key(s).\n", len(keys))
}

func validateClearSelector(opts *clearSessionsOptions) error {
	selectors := 0
	if opts.SessionID != "" {
		selectors++
	}
	if opts.Email != "" {
		selectors++
	}
	if opts.All {
		selectors++
	}
	if selectors != 1 {
		return errors.New("exactly one of --session, --email, or --all is required")
	}
	return nil
}

func selectSessionKeys(ctx context.Context, client redis.UniversalClient, opts *clearSessionsOptions) ([]string, error) {
	if opts.SessionID != "" {
		key := sessionKeyPrefix + opts.SessionID
		n, err := client.Exists(ctx, key).Result()
		if err != nil {
			return nil, fmt.Errorf("check session: %w", err)
		}
		if n == 0 {
			return nil, nil
		}
		return []string{key}, nil
	}

	records, err := loadSessions(ctx, client, opts.Email)
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(records))
	for _, rec := range records {
		keys = append(keys, rec.Key)
	}
	return keys, nil
}

func loadSessions(ctx context.Context, client redis.UniversalClient, emailFilter string) ([]sessionRecord, error) {
	keys, err := scanKeys(ctx, client, sessionKeyPrefix+"*")
	if err != nil {
		return nil, err
	}

	records := make([]sessionRecord, 0, len(keys))
	for _, key := range keys {
		data, getErr := client.Get(ctx, key).Result()
		if getErr != nil {
			if errors.Is(getErr, redis.Nil) {
				continue // expired between scan and get
			}
			return nil, fmt.Errorf("read session %s: %w", key, getErr)
		}

		rec := sessionRecord{Key: key}
		if unmarshalErr := json.Unmarshal([]byte(data), &rec.Session); unmarshalErr != nil {
			rec.Corrupt = true
		}
		if emailFilter != "" && !strings.EqualFold(rec.Session.Identity.Email, emailFilter) {
			continue
		}
		records = append(records, rec)
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].Session.ExpiresAt.Before(records[j].Session.ExpiresAt)
	})
	return records, nil
}

func scanKeys(ctx context.Context, client redis.UniversalClient, pattern string) ([]string, error) {
	var (
		keys   []string
		cursor uint64
	)
	for {
		batch, next, err := client.Scan(ctx, cursor, pattern, scanBatchSize).Result()
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", pattern, err)
		}
		keys = append(keys, batch...)
		cursor = next
		if cursor == 0 {
			return keys, nil
		}
	}
}

func printSessions(records []sessionRecord) error {
	if len(records) == 0 {
		return writef(os.Stdout, "No sessions found.\n")
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	if err := writef(w, "SESSION\tEMAIL\tKIND\tVERIFIED\tEXPIRES\n"); err != nil {
		return err
	}
	for _, rec := range records {
		if rec.Corrupt {
			if err := writef(w, "%s\t<corrupt record>\t\t\t\n", strings.TrimPrefix(rec.Key, sessionKeyPrefix)); err != nil {
				return err
			}
			continue
		}
		sess := rec.Session
		if err := writef(w, "%s\t%s\t%s\t%t\t%s\n",
			sess.ID,
			sess.Identity.Email,
			sess.Identity.Kind,
			sess.Verified,
			sess.ExpiresAt.UTC().Format(time.RFC3339),
		); err != nil {
			return err
		}
	}
	return w.Flush()
}

func confirm(prompt string) (bool, error) {
	if err := writef(os.Stdout, "%s [y/N]: ", prompt); err != nil {
		return false, err
	}
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false, fmt.Errorf("read confirmation: %w", err)
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}

func writef(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintf(w, format, args...)
	return err
}
