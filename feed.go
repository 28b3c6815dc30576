package nls

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"net/url"
	"path"
	"strings"

	"gopkg.in/yaml.v2"
)

type FeedFormat string

const (
	FormatNDJSON FeedFormat = "ndjson"
	FormatJSON   FeedFormat = "json"
	FormatYAML   FeedFormat = "yaml"
)

func ParseFeedFormat(s string) (FeedFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ndjson", "jsonl":
		return FormatNDJSON, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("Unknown feed format: %s", s)
}

// guessFeedFormat picks a format from the file extension of uri, defaulting
// to newline delimited JSON.
func guessFeedFormat(uri string) FeedFormat {
	if parsed, err := url.Parse(uri); err == nil && len(parsed.Path) > 0 {
		uri = parsed.Path
	}
	ext := strings.TrimPrefix(path.Ext(uri), ".")
	if format, err := ParseFeedFormat(ext); err == nil {
		return format
	}
	return FormatNDJSON
}

// RawRecord is one undecoded location record of a feed. Err is set when the
// record could not even be decoded into a mapping.
type RawRecord struct {
	Position int // 1-based
	Mapping  Mapping
	Err      error
}

// FetchFeed loads the raw bytes of a feed from a local path, an http(s)
// url or an s3://bucket/key url.
func FetchFeed(ctx context.Context, name string, feed FeedConfig) ([]byte, error) {
	parsed, err := url.Parse(feed.Uri)
	if err != nil || len(parsed.Scheme) <= 1 {
		// bare paths, including windows drive letters
		return ioutil.ReadFile(feed.Uri)
	}

	switch parsed.Scheme {
	case "file":
		return ioutil.ReadFile(parsed.Path)
	case "http", "https":
		return NewEndpoint(feed).Fetch(ctx, name)
	case "s3":
		return GetS3Object(ctx, parsed.Host, strings.TrimPrefix(parsed.Path, "/"))
	}

	return nil, fmt.Errorf("Unsupported feed uri scheme: %s", parsed.Scheme)
}

// ReadFeed fetches a feed and splits it into records.
func ReadFeed(ctx context.Context, name string, feed FeedConfig) ([]RawRecord, error) {
	format := guessFeedFormat(feed.Uri)
	if len(feed.Format) > 0 {
		var err error
		if format, err = ParseFeedFormat(feed.Format); err != nil {
			return nil, err
		}
	}

	body, err := FetchFeed(ctx, name, feed)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	Log.Debugf("read %d bytes of %s", len(body), format, FeedFields(name))

	return SplitRecords(body, format)
}

// SplitRecords decodes a feed body into its records. A record that cannot be
// decoded is returned with Err set rather than failing the whole feed;
// a body that is unreadable as a whole fails.
func SplitRecords(body []byte, format FeedFormat) ([]RawRecord, error) {
	switch format {
	case FormatNDJSON:
		return splitLines(body)
	case FormatJSON:
		return splitJSON(body)
	case FormatYAML:
		return splitYAML(body)
	}
	return nil, fmt.Errorf("Unknown feed format: %s", format)
}

func splitLines(body []byte) ([]RawRecord, error) {
	records := make([]RawRecord, 0)

	scanner := bufio.NewScanner(bytes.NewReader(body))
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)

	for lineNo := 1; scanner.Scan(); lineNo++ {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		m, err := DecodeText(line)
		records = append(records, RawRecord{Position: lineNo, Mapping: m, Err: err})
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

func splitJSON(body []byte) ([]RawRecord, error) {
	var decoded interface{}
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, err
	}
	return recordsFromValue(decoded)
}

func splitYAML(body []byte) ([]RawRecord, error) {
	records := make([]RawRecord, 0)

	decoder := yaml.NewDecoder(bytes.NewReader(body))
	for {
		var doc interface{}
		err := decoder.Decode(&doc)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		docRecords, err := recordsFromValue(doc)
		if err != nil {
			return nil, err
		}
		for _, record := range docRecords {
			record.Position = len(records) + 1
			records = append(records, record)
		}
	}

	return records, nil
}

// recordsFromValue accepts either a single record or a list of them.
func recordsFromValue(value interface{}) ([]RawRecord, error) {
	if list, ok := value.([]interface{}); ok {
		records := make([]RawRecord, len(list))
		for idx, item := range list {
			m, err := toStringMap("", item)
			records[idx] = RawRecord{Position: idx + 1, Mapping: m, Err: err}
		}
		return records, nil
	}

	if value == nil {
		return []RawRecord{}, nil
	}

	m, err := toStringMap("", value)
	return []RawRecord{{Position: 1, Mapping: m, Err: err}}, nil
}
