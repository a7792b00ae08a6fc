// Package share builds and reads share links and resolves them into
// read-only record views.
//
// A link names its records in the path and carries a salted token in the
// query:
//
//	/shared-memories/3,7?access=<token>&readonly=true
//
// The token only marks a deliberately generated link. Nothing validates it,
// so the read-only guarantee rests on viewers not exposing any mutation.
package share

import (
	"encoding/base64"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/memorymap/internal/common"
	"github.com/dmitrijs2005/memorymap/internal/models"
	"github.com/google/uuid"
)

// PathPrefix is the path segment that introduces the id list.
const PathPrefix = "/shared-memories/"

const (
	paramAccess   = "access"
	paramReadOnly = "readonly"
)

// Codec encodes share links against a base URL.
type Codec struct {
	baseURL string
	now     func() time.Time
	newSalt func() string
}

// NewCodec returns a codec producing links under baseURL. An empty base
// yields path+query fragments.
func NewCodec(baseURL string) *Codec {
	return &Codec{
		baseURL: strings.TrimRight(baseURL, "/"),
		now:     time.Now,
		newSalt: func() string { return uuid.NewString() },
	}
}

// Encode builds a link for ids. Duplicate ids are dropped, order is kept.
func (c *Codec) Encode(ids []int64, mode models.AccessMode) (string, error) {
	if _, err := models.ParseAccessMode(string(mode)); err != nil {
		return "", err
	}
	ids = dedupe(ids)
	if len(ids) == 0 {
		return "", fmt.Errorf("%w: select at least one memory to share", common.ErrorValidation)
	}

	parts := make([]string, len(ids))
	for i, id := range ids {
		if id <= 0 {
			return "", fmt.Errorf("%w: invalid memory id %d", common.ErrorValidation, id)
		}
		parts[i] = strconv.FormatInt(id, 10)
	}

	q := url.Values{}
	q.Set(paramAccess, c.token(mode))
	q.Set(paramReadOnly, "true")

	return c.baseURL + PathPrefix + strings.Join(parts, ",") + "?" + q.Encode(), nil
}

// token is base64url("<mode>_<unix nanos>_<salt>").
func (c *Codec) token(mode models.AccessMode) string {
	raw := fmt.Sprintf("%s_%d_%s", mode, c.now().UnixNano(), c.newSalt())
	return base64.RawURLEncoding.EncodeToString([]byte(raw))
}

// Decode reads a share link, either a full URL or a path with query.
// The id list must be present and hold positive integers only; anything
// else is common.ErrorMalformedShareLink. The token is not checked.
func Decode(raw string) (models.ShareDescriptor, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return models.ShareDescriptor{}, fmt.Errorf("%w: %v", common.ErrorMalformedShareLink, err)
	}

	_, list, ok := strings.Cut(u.Path, PathPrefix)
	if !ok {
		return models.ShareDescriptor{}, fmt.Errorf("%w: missing %s", common.ErrorMalformedShareLink, PathPrefix)
	}
	list = strings.Trim(list, "/")
	if list == "" {
		return models.ShareDescriptor{}, fmt.Errorf("%w: no memory ids", common.ErrorMalformedShareLink)
	}

	var ids []int64
	for _, p := range strings.Split(list, ",") {
		id, err := strconv.ParseInt(strings.TrimSpace(p), 10, 64)
		if err != nil || id <= 0 {
			return models.ShareDescriptor{}, fmt.Errorf("%w: bad memory id %q", common.ErrorMalformedShareLink, p)
		}
		ids = append(ids, id)
	}

	d := models.ShareDescriptor{
		RecordIDs: dedupe(ids),
		Mode:      models.AccessReadOnly,
		Token:     u.Query().Get(paramAccess),
	}
	if mode, issued, ok := parseToken(d.Token); ok {
		d.Mode, d.IssuedAt = mode, issued
	}
	return d, nil
}

// parseToken extracts mode and issue time when the token has the shape
// Encode produces.
func parseToken(tok string) (models.AccessMode, time.Time, bool) {
	if tok == "" {
		return "", time.Time{}, false
	}
	b, err := base64.RawURLEncoding.DecodeString(tok)
	if err != nil {
		return "", time.Time{}, false
	}
	parts := strings.SplitN(string(b), "_", 3)
	if len(parts) != 3 {
		return "", time.Time{}, false
	}
	mode, err := models.ParseAccessMode(parts[0])
	if err != nil {
		return "", time.Time{}, false
	}
	ns, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return "", time.Time{}, false
	}
	return mode, time.Unix(0, ns).UTC(), true
}

func dedupe(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
