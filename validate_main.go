package nls

import (
	"context"
	"errors"
	"fmt"
	"net/smtp"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

const DefaultSubject = "Normalized Locations - Notification"
const LambdaExeName = "nls-lambda"

var retryDelay = 2 * time.Second

// LoadConfig reads the config file, falling back to the defaults when no
// config file exists.
func LoadConfig() (*Config, error) {
	config, err := NewConfigDefaultPath()
	if errors.Is(err, os.ErrNotExist) {
		Log.Debugf("No config file found, using defaults")
		return NewDefaultConfig(), nil
	}
	return config, err
}

func Run(args []string) {
	config, err := LoadConfig()
	if err != nil {
		Log.Errorf("Can't read config: %v", err)
		panic(err)
	}

	if filepath.Base(args[0]) == LambdaExeName {
		//never write files on lambda
		config.DumpOutput = false
	}

	if len(args) > 1 {
		switch args[1] {
		case "once":
			if err := RunOnce(context.Background(), config); err != nil {
				panic(err)
			}
			return
		case "check":
			if len(args) > 2 {
				rejected, err := Check(context.Background(), config, args[2:])
				if err != nil {
					Log.Errorf("%v", err)
					os.Exit(2)
				} else if rejected > 0 {
					os.Exit(2)
				}
				os.Exit(0)
			}
			fallthrough
		default:
			printUsageAndExit(args)
		}
	} else {
		printUsageAndExit(args)
	}
}

// RunOnce validates every configured feed in parallel.
func RunOnce(ctx context.Context, config *Config) error {
	if config.DumpOutput {
		if err := os.MkdirAll(config.DumpDir, 0755); err != nil {
			Log.Errorf("Can't create dump dir: %s", config.DumpDir)
			return err
		}
	}

	names := make([]string, 0, len(config.Feeds))
	for name := range config.Feeds {
		names = append(names, name)
	}
	sort.Strings(names)

	return runFeeds(ctx, config, NewFeedTracker(names), names)
}

// runFeeds validates the named feeds, retrying failed ones up to
// config.Retries times. Only runs whose output was written are recorded.
func runFeeds(ctx context.Context, config *Config, tracker *FeedTracker, feeds []string) error {
	for retryCount := 0; len(feeds) > 0 && retryCount <= config.Retries; retryCount++ {
		if retryCount == 0 {
			Log.Infof("Validating %d feed(s) once...", len(feeds))
		} else {
			// don't retry too fast
			time.Sleep(retryDelay)
			Log.Infof("Retrying %d failed feed(s) (%d/%d)...", len(feeds), retryCount, config.Retries)
		}

		resultChan := make(chan *feedRun)
		for _, name := range feeds {
			//run all feeds in parallel
			go doValidateAndWrite(ctx, config, tracker, &feedRun{Name: name, Feed: config.Feeds[name]}, resultChan)
		}

		failed := make([]string, 0)
		for doneCount := 0; doneCount < len(feeds); doneCount++ {
			run := <-resultChan

			// build new list of failed feeds
			if run.Err != nil {
				failed = append(failed, run.Name)
			}

			feedsLeft := len(feeds) - doneCount - 1
			accepted, rejected := tracker.Counts(run.Name)
			Log.Infof("Feed finished (%d accepted, %d rejected in total), waiting on %d more...", accepted, rejected, feedsLeft, FeedFields(run.Name))
		}

		sort.Strings(failed)
		feeds = failed
	}

	if len(feeds) > 0 {
		return fmt.Errorf("Could not validate feed(s): %s", strings.Join(feeds, ", "))
	}

	return nil
}

// Check validates ad-hoc inputs given as paths or urls and returns the
// number of rejected records.
func Check(ctx context.Context, config *Config, uris []string) (int, error) {
	tracker := NewFeedTracker(nil)
	resultChan := make(chan *feedRun)

	for _, uri := range uris {
		name := feedNameFromUri(uri)
		tracker.Add(name)
		go doValidateAndWrite(ctx, config, tracker, &feedRun{Name: name, Feed: FeedConfig{Uri: uri}}, resultChan)
	}

	rejectedTotal := 0
	var firstErr error
	for doneCount := 0; doneCount < len(uris); doneCount++ {
		run := <-resultChan
		if run.Err != nil {
			if firstErr == nil {
				firstErr = run.Err
			}
			continue
		}

		for _, rejection := range run.Result.Rejections {
			Log.Warnf("record %d: %v", rejection.Position, rejection.Err, FeedFields(run.Name))
		}
		rejectedTotal += run.Result.Rejected()
	}

	return rejectedTotal, firstErr
}

// ValidateS3Object validates a single feed object stored on S3.
func ValidateS3Object(ctx context.Context, config *Config, name string, bucket string, key string) (*FeedResult, error) {
	if len(name) == 0 {
		name = feedNameFromUri(key)
	}

	tracker := NewFeedTracker([]string{name})
	resultChan := make(chan *feedRun, 1)
	doValidateAndWrite(ctx, config, tracker, &feedRun{Name: name, Feed: FeedConfig{Uri: S3Uri(bucket, key)}}, resultChan)

	run := <-resultChan
	return run.Result, run.Err
}

type feedRun struct {
	Name   string
	Feed   FeedConfig
	Result *FeedResult
	Err    error
}

func doValidateAndWrite(ctx context.Context, config *Config, tracker *FeedTracker, run *feedRun, resultChan chan *feedRun) {
	defer func() {
		resultChan <- run
	}()

	records, err := ReadFeed(ctx, run.Name, run.Feed)
	if err != nil {
		Log.Errorf("%v", err, FeedFields(run.Name))
		run.Err = err
		return
	}

	run.Result = ValidateFeed(run.Name, records)

	written, err := WriteResult(ctx, config, run.Result)
	if err != nil {
		Log.Errorf("%v", err, FeedFields(run.Name))
		run.Err = err
		return
	}

	for _, output := range written {
		Log.Debugf("output written to %s", output, FeedFields(run.Name))
	}

	// a failed write is retried, so only record the run once it is done
	rejected := tracker.Record(run.Result)

	if config.NotifyOnError && tracker.ShouldNotify(run.Name, config.ErrorWarningThreshold) {
		if err := notifyRejections(config, run.Result, rejected); err != nil {
			Log.Errorf("%+v", err)
		}
	}
}

func feedNameFromUri(uri string) string {
	base := filepath.Base(uri)
	if ext := filepath.Ext(base); len(ext) > 0 && len(ext) < len(base) {
		base = strings.TrimSuffix(base, ext)
	}
	return base
}

func notifyRejections(config *Config, result *FeedResult, rejected int) error {
	subject := DefaultSubject

	sb := strings.Builder{}
	sb.WriteString(fmt.Sprintf("Feed %s has %d rejected record(s)", result.Name, rejected))
	for idx, rejection := range result.Rejections {
		if idx >= config.ErrorWarningThreshold {
			sb.WriteString(newline)
			sb.WriteString("...")
			break
		}
		sb.WriteString(newline)
		sb.WriteString(fmt.Sprintf("record %d: %v", rejection.Position, rejection.Err))
	}

	return sendEmail(config, subject, sb.String())
}

func sendEmail(config *Config, subject string, body string) error {
	if len(config.SmtpHost) == 0 || config.TestMode {
		Log.Debugf("(silent) subject: %s, body: %s", subject, body)
		return nil
	}

	Log.Infof("Subject: %s", subject)
	Log.Infof("Body: %s", body)

	sb := strings.Builder{}
	sb.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	sb.WriteString("\r\n")
	sb.WriteString(body)

	auth := smtp.PlainAuth("", config.SmtpUsername, config.SmtpPassword, config.SmtpHost)

	err := smtp.SendMail(fmt.Sprintf("%s:%d", config.SmtpHost, config.SmtpPort), auth, config.FromEmailAddress, config.NotifyEmailAddrs, []byte(sb.String()))

	if err != nil {
		Log.Errorf("sendEmail: %+v", err)
	}

	return err
}

func printUsageAndExit(args []string) {
	exeName := filepath.Base(args[0])
	fmt.Printf("Usage: %s once | check <path_or_url> [<path_or_url>...]\n", exeName)
	os.Exit(0)
}
