package cli

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/dmitrijs2005/memorymap/internal/common"
	"github.com/dmitrijs2005/memorymap/internal/timeline"
)

const shareText = "Check out my memories!"

// sharePlatforms lists the --via targets in print order.
var sharePlatforms = []string{"facebook", "twitter", "whatsapp", "email"}

var platformTitles = map[string]string{
	"facebook": "Facebook",
	"twitter":  "Twitter",
	"whatsapp": "WhatsApp",
	"email":    "Email",
}

// Share prints a read-only link for the listed memories, or for all of the
// principal's memories with "share all". With --via it also prints the
// intent link for one platform, or for every platform with "--via all".
func (a *App) Share(ctx context.Context, args []string) error {
	args, via, err := splitVia(args)
	if err != nil {
		return err
	}
	platforms, err := viaPlatforms(via)
	if err != nil {
		return err
	}

	p, err := a.principal()
	if err != nil {
		return err
	}

	var link string
	if len(args) == 1 && strings.EqualFold(args[0], "all") {
		link, err = a.memories.ShareAll(p)
	} else {
		ids, perr := parseIDList(args)
		if perr != nil {
			return perr
		}
		link, err = a.memories.Share(p, ids)
	}
	if err != nil {
		return err
	}

	a.logger.Debug(ctx, "share link created", "user", p.ID)
	fmt.Fprintln(a.out, "Share this read-only link:")
	fmt.Fprintln(a.out, link)
	for _, pl := range platforms {
		fmt.Fprintf(a.out, "Share on %s: %s\n", platformTitles[pl], intentLink(pl, link))
	}
	return nil
}

// splitVia removes "--via X" (or "--via=X", single dash too) from args.
func splitVia(args []string) ([]string, string, error) {
	rest := make([]string, 0, len(args))
	via := ""
	for i := 0; i < len(args); i++ {
		name, value, hasValue := strings.Cut(strings.TrimLeft(args[i], "-"), "=")
		if !strings.HasPrefix(args[i], "-") || name != "via" {
			rest = append(rest, args[i])
			continue
		}
		if !hasValue {
			if i+1 >= len(args) {
				return nil, "", fmt.Errorf("%w: --via needs a platform", common.ErrorValidation)
			}
			i++
			value = args[i]
		}
		via = value
	}
	return rest, via, nil
}

func viaPlatforms(via string) ([]string, error) {
	via = strings.ToLower(strings.TrimSpace(via))
	switch via {
	case "":
		return nil, nil
	case "all":
		return sharePlatforms, nil
	}
	if _, ok := platformTitles[via]; !ok {
		return nil, fmt.Errorf("%w: unknown platform %q, use one of %s or all",
			common.ErrorValidation, via, strings.Join(sharePlatforms, ", "))
	}
	return []string{via}, nil
}

// intentLink wraps a share link into the platform's compose URL.
func intentLink(platform, link string) string {
	var u url.URL
	q := url.Values{}
	switch platform {
	case "facebook":
		u = url.URL{Scheme: "https", Host: "www.facebook.com", Path: "/sharer/sharer.php"}
		q.Set("u", link)
	case "twitter":
		u = url.URL{Scheme: "https", Host: "twitter.com", Path: "/intent/tweet"}
		q.Set("text", shareText)
		q.Set("url", link)
	case "whatsapp":
		u = url.URL{Scheme: "https", Host: "wa.me", Path: "/"}
		q.Set("text", shareText+" "+link)
	case "email":
		u = url.URL{Scheme: "mailto"}
		q.Set("subject", "Shared Memories")
		q.Set("body", shareText+"\n\n"+link)
	}
	// Mail clients show "+" literally; a literal plus is already %2B.
	u.RawQuery = strings.ReplaceAll(q.Encode(), "+", "%20")
	return u.String()
}

// Open shows the memories behind a share link. Nothing in this view can be
// edited.
func (a *App) Open(ctx context.Context, args []string) error {
	var raw string
	if len(args) > 0 {
		raw = args[0]
	} else {
		var err error
		if raw, err = GetSimpleText(a.reader, "Share link"); err != nil {
			return err
		}
	}

	view, err := a.memories.OpenShared(raw)
	if errors.Is(err, common.ErrorMalformedShareLink) {
		a.logger.Debug(ctx, "bad share link", "error", err)
		fmt.Fprintln(a.out, "Failed to load shared memories")
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Shared memories (%s)\n", view.Mode())
	if view.Empty() {
		fmt.Fprintln(a.out, "No memories found")
		return nil
	}
	a.printTimeline(timeline.Group(view.Records(), a.loc))
	return nil
}
