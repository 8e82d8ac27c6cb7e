package sdk

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

func (c *Client) getRecord(ctx context.Context, path string, query url.Values) (Record, error) {
	payload, err := c.Send(ctx, path, RequestOptions{Method: http.MethodGet, Query: query})
	if err != nil {
		return nil, err
	}
	return asRecord(payload), nil
}

// getList returns a list payload exactly as decoded: a bare array or a paginated
// object. NewPage gives a uniform view of either.
func (c *Client) getList(ctx context.Context, path string, query url.Values) (any, error) {
	return c.Send(ctx, path, RequestOptions{Method: http.MethodGet, Query: query})
}

func (c *Client) writeRecord(ctx context.Context, method, path string, body any) (Record, error) {
	payload, err := c.Send(ctx, path, RequestOptions{Method: method, Body: body})
	if err != nil {
		return nil, err
	}
	return asRecord(payload), nil
}

func resourcePath(format string, id int64) string {
	return fmt.Sprintf(format, id)
}

// asRecord returns the payload as a Record, or nil when it is not a JSON object.
func asRecord(payload any) Record {
	m, ok := payload.(map[string]any)
	if !ok {
		return nil
	}
	return Record(m)
}

// withParam returns a copy of query with key set to value.
func withParam(query url.Values, key, value string) url.Values {
	out := make(url.Values, len(query)+1)
	for k, v := range query {
		out[k] = append([]string(nil), v...)
	}
	out.Set(key, value)
	return out
}

func stationQuery(stationID int64) url.Values {
	if stationID == 0 {
		return nil
	}
	return url.Values{"station_id": {fmt.Sprint(stationID)}}
}
