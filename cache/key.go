package cache

// Tag labels a class of cached resources. A wide tag covers every entry of a
// resource; a scoped tag covers the entries for one specific record.
type Tag struct {
	Resource string
	ID       string
}

// Wide returns a tag covering all entries of a resource.
func Wide(resource string) Tag {
	return Tag{Resource: resource}
}

// Scoped returns a tag covering the entries for one record of a resource.
func Scoped(resource, id string) Tag {
	return Tag{Resource: resource, ID: id}
}

// IsScoped reports whether the tag targets a single record.
func (t Tag) IsScoped() bool {
	return t.ID != ""
}

func (t Tag) String() string {
	if t.ID == "" {
		return t.Resource
	}
	return t.Resource + "/" + t.ID
}

// Key identifies a cache entry: the resource plus the canonical query string
// of the request parameters. Callers produce the query through
// client.Params.Encode, which sorts by name, so two parameter sets with the
// same content always land on the same entry.
type Key struct {
	Resource string
	Query    string
	Tags     []Tag
}

// NewKey builds a key for a resource and its canonical query. The wide
// resource tag is always attached; extra tags (typically one scoped tag)
// extend the invalidation surface.
func NewKey(resource, query string, tags ...Tag) Key {
	all := make([]Tag, 0, len(tags)+1)
	all = append(all, Wide(resource))
	for _, t := range tags {
		if t == Wide(resource) {
			continue
		}
		all = append(all, t)
	}
	return Key{Resource: resource, Query: query, Tags: all}
}

// ID returns the map identity of the key.
func (k Key) ID() string {
	return k.Resource + "?" + k.Query
}
