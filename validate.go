package nls

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

const ndjsonContentType = "application/x-ndjson"

// Rejection is a record of a feed that failed to validate.
type Rejection struct {
	Position int
	Err      error
}

type FeedResult struct {
	Name       string
	RunID      string
	Total      int
	Accepted   []NormalizedLocation
	Rejections []Rejection
}

func (result *FeedResult) Rejected() int {
	return len(result.Rejections)
}

// ValidateFeed builds a NormalizedLocation from every record, stopping at the
// first problem of each record.
func ValidateFeed(name string, records []RawRecord) *FeedResult {
	result := &FeedResult{
		Name:       name,
		RunID:      uuid.New().String(),
		Total:      len(records),
		Accepted:   make([]NormalizedLocation, 0, len(records)),
		Rejections: make([]Rejection, 0),
	}

	for _, record := range records {
		err := record.Err
		if err == nil {
			var loc NormalizedLocation
			loc, err = NormalizedLocationFromMapping(record.Mapping)
			if err == nil {
				result.Accepted = append(result.Accepted, loc)
				continue
			}
		}

		Log.Debugf("record %d rejected: %v", record.Position, err, RunFields(name, result.RunID))
		result.Rejections = append(result.Rejections, Rejection{Position: record.Position, Err: err})
	}

	Log.Infof("%d record(s), %d accepted, %d rejected", result.Total, len(result.Accepted), result.Rejected(), RunFields(name, result.RunID))
	return result
}

type rejectionReport struct {
	Position int    `json:"position"`
	Field    string `json:"field,omitempty"`
	Kind     string `json:"kind"`
	Error    string `json:"error"`
}

func newRejectionReport(rejection Rejection) rejectionReport {
	report := rejectionReport{
		Position: rejection.Position,
		Kind:     "undecodable",
		Error:    rejection.Err.Error(),
	}

	var verr *ValidationError
	if errors.As(rejection.Err, &verr) {
		report.Field = verr.Field
		report.Kind = verr.Kind.Error()
	}
	return report
}

// RejectionReport renders rejections as newline delimited JSON.
func (result *FeedResult) RejectionReport() ([]byte, error) {
	buf := bytes.Buffer{}
	encoder := json.NewEncoder(&buf)
	for _, rejection := range result.Rejections {
		if err := encoder.Encode(newRejectionReport(rejection)); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

// WriteResult stores accepted records and the rejection report in the dump
// dir and/or the output bucket, whichever the config enables. It returns the
// paths and uris written.
func WriteResult(ctx context.Context, config *Config, result *FeedResult) ([]string, error) {
	written := make([]string, 0)

	if !config.DumpOutput && !config.DumpOutputS3 {
		return written, nil
	}

	accepted, err := EncodeLines(result.Accepted)
	if err != nil {
		return written, err
	}

	rejected, err := result.RejectionReport()
	if err != nil {
		return written, err
	}

	outputs := []struct {
		prefix string
		body   []byte
	}{
		{"normalized", accepted},
		{"rejected", rejected},
	}

	for _, output := range outputs {
		if len(output.body) == 0 {
			continue
		}

		key := fmt.Sprintf("%s/%s/%s.ndjson", output.prefix, result.Name, result.RunID)

		if config.DumpOutputS3 {
			uri, err := putResultS3(ctx, config, key, output.body)
			if err != nil {
				return written, err
			}
			if len(uri) > 0 {
				written = append(written, uri)
			}
		}

		if config.DumpOutput {
			filePath := filepath.Join(config.DumpDir, filepath.FromSlash(key))
			if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
				return written, err
			}
			if err := ioutil.WriteFile(filePath, output.body, 0644); err != nil {
				return written, err
			}
			Log.Debugf("Wrote %d bytes to file: %s", len(output.body), filePath)
			written = append(written, filePath)
		}
	}

	return written, nil
}

func putResultS3(ctx context.Context, config *Config, key string, body []byte) (string, error) {
	if config.TestMode {
		Log.Debugf("(silent) s3 put: %s, %d bytes", key, len(body))
		return "", nil
	}

	if !HasAWSCredentials() {
		Log.Warnf("Configured to send output to S3 but no AWS credentials were found")
		return "", nil
	}

	bucket, err := config.ResolveOutputBucket()
	if err != nil {
		return "", err
	}

	uri, err := PutS3Object(ctx, bucket, key, ndjsonContentType, body)
	if err != nil {
		return "", err
	}

	Log.Debugf("Sent %d bytes to S3: %s", len(body), uri)
	return uri, nil
}
