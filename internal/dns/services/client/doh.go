package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/tidwall/gjson"

	"github.com/kestrelns/kestrel/internal/dns/common/log"
	"github.com/kestrelns/kestrel/internal/dns/common/rrdata"
	"github.com/kestrelns/kestrel/internal/dns/domain"
)

// dohMediaType is the JSON media type used by the Google and Cloudflare
// JSON-over-HTTPS resolver endpoints.
const dohMediaType = "application/dns-json"

// maxDoHResponseSize bounds how much of an HTTP response body is read.
const maxDoHResponseSize = 1 << 20

// DoHResolver resolves names against a JSON DNS-over-HTTPS endpoint such as
// https://dns.google/resolve or https://cloudflare-dns.com/dns-query.
type DoHResolver struct {
	endpoint *url.URL
	http     *http.Client
	logger   log.Logger
}

// NewDoHResolver validates the endpoint URL and returns a resolver. A nil
// httpClient uses a client with a default timeout.
func NewDoHResolver(endpoint string, httpClient *http.Client, logger log.Logger) (*DoHResolver, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid DoH endpoint %q: %w", endpoint, err)
	}
	if u.Scheme != "https" && u.Scheme != "http" {
		return nil, fmt.Errorf("invalid DoH endpoint %q: scheme must be http(s)", endpoint)
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	return &DoHResolver{endpoint: u, http: httpClient, logger: logger}, nil
}

// LookupFull performs a GET against the JSON endpoint and maps the reply
// back into a wire-shaped message so callers see the same types regardless
// of transport.
func (r *DoHResolver) LookupFull(ctx context.Context, name string, family string, rrtype domain.RRType) (domain.Message, error) {
	ascii, err := normalizeName(name)
	if err != nil {
		return domain.Message{}, err
	}
	qtype := pickType(family, rrtype)
	if _, err := domain.NewQuestion(ascii, qtype); err != nil {
		return domain.Message{}, err
	}

	u := *r.endpoint
	q := u.Query()
	q.Set("name", ascii)
	q.Set("type", strconv.Itoa(int(qtype)))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return domain.Message{}, err
	}
	req.Header.Set("Accept", dohMediaType)

	resp, err := r.http.Do(req)
	if err != nil {
		return domain.Message{}, fmt.Errorf("DoH request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return domain.Message{}, fmt.Errorf("DoH endpoint returned HTTP %d", resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxDoHResponseSize))
	if err != nil {
		return domain.Message{}, fmt.Errorf("failed to read DoH response: %w", err)
	}

	m, err := parseDoHResponse(body)
	if err != nil {
		return domain.Message{}, err
	}
	r.logger.Debug(map[string]any{
		"host":    ascii,
		"type":    qtype.String(),
		"rcode":   m.Flags.RCode().String(),
		"answers": len(m.Answers),
	}, "Resolved DoH query")
	return m, nil
}

// Lookup resolves name and returns the rendered matching answers.
func (r *DoHResolver) Lookup(ctx context.Context, name string, family string, rrtype domain.RRType) ([]string, error) {
	m, err := r.LookupFull(ctx, name, family, rrtype)
	if err != nil {
		return nil, err
	}
	return renderAnswers(m, pickType(family, rrtype)), nil
}

// parseDoHResponse maps the JSON reply shape used by dns.google into a
// Message. Record data strings are re-encoded to payload bytes so downstream
// rendering behaves exactly as it does for wire responses.
func parseDoHResponse(body []byte) (domain.Message, error) {
	root := gjson.ParseBytes(body)
	if !root.Get("Status").Exists() {
		return domain.Message{}, fmt.Errorf("malformed DoH response: missing Status")
	}

	var m domain.Message
	m.Flags.SetResponse(true)
	m.Flags.SetRCode(domain.RCode(root.Get("Status").Int()))
	m.Flags.SetTruncated(root.Get("TC").Bool())
	m.Flags.SetRecursionDesired(root.Get("RD").Bool())
	m.Flags.SetRecursionAvailable(root.Get("RA").Bool())

	root.Get("Question").ForEach(func(_, v gjson.Result) bool {
		m.Questions = append(m.Questions, domain.Question{
			Name:  domain.ParseName(v.Get("name").String()),
			Type:  domain.RRType(v.Get("type").Int()),
			Class: domain.RRClassIN,
		})
		return true
	})

	var convErr error
	root.Get("Answer").ForEach(func(_, v gjson.Result) bool {
		rrtype := uint16(v.Get("type").Int())
		data, err := rrdata.Encode(rrtype, v.Get("data").String())
		if err != nil {
			convErr = fmt.Errorf("bad answer data for type %d: %w", rrtype, err)
			return false
		}
		m.Answers = append(m.Answers, domain.ResourceRecord{
			Name:  domain.ParseName(v.Get("name").String()),
			Type:  rrtype,
			Class: uint16(domain.RRClassIN),
			TTL:   uint32(v.Get("TTL").Int()),
			Data:  data,
		})
		return true
	})
	if convErr != nil {
		return domain.Message{}, convErr
	}
	return m, nil
}

var _ Resolver = (*DoHResolver)(nil)
