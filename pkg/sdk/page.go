package sdk

// Page is a read-only view over a list payload. List methods return the decoded
// body untouched; Page lets callers walk either shape the backend uses: a bare
// JSON array, or an object with count, next, previous and results.
type Page struct {
	// Items holds every element in order, including ones that are not objects.
	Items []any
	// Paginated is set when the payload was a paginated object.
	Paginated bool
	Count     int64
	Next      string
	Previous  string
}

// NewPage builds the view. Any other payload yields a page without items.
func NewPage(payload any) Page {
	switch v := payload.(type) {
	case []any:
		return Page{Items: v, Count: int64(len(v))}
	case map[string]any:
		results, ok := v["results"].([]any)
		if !ok {
			return Page{}
		}
		page := Page{Items: results, Paginated: true, Count: int64(len(results))}
		if count, ok := toInt64(v["count"]); ok {
			page.Count = count
		}
		page.Next, _ = v["next"].(string)
		page.Previous, _ = v["previous"].(string)
		return page
	default:
		return Page{}
	}
}

// IsList reports whether the payload had one of the list shapes.
func (p Page) IsList() bool {
	return p.Items != nil
}

// HasMore reports whether the backend announced a next page.
func (p Page) HasMore() bool {
	return p.Next != ""
}

// Records returns one Record per item. Items that are not objects are kept as
// {"value": item}.
func (p Page) Records() []Record {
	records := make([]Record, 0, len(p.Items))
	for _, item := range p.Items {
		if m, ok := item.(map[string]any); ok {
			records = append(records, Record(m))
			continue
		}
		records = append(records, Record{"value": item})
	}
	return records
}
