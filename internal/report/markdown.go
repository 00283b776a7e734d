// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"fmt"
	"io"
	"strings"
)

type markdownRenderer struct{}

func (markdownRenderer) Extension() string { return "md" }

func (markdownRenderer) Render(w io.Writer, rep Report) error {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", rep.heading())
	fmt.Fprintf(&b, "_Keyword: %s · Generated %s · %d paper(s)_\n\n",
		rep.Keyword, rep.GeneratedAt.UTC().Format("2006-01-02 15:04 MST"), len(rep.Items))

	if len(rep.Items) == 0 {
		b.WriteString("No new papers.\n")
	}
	for i, it := range rep.Items {
		fmt.Fprintf(&b, "## %d. %s\n\n", i+1, it.Title)
		fmt.Fprintf(&b, "- **Authors:** %s\n", joinAuthors(it.Authors))
		fmt.Fprintf(&b, "- **Published:** %s\n", it.PublishedDate())
		fmt.Fprintf(&b, "- **Link:** <%s>\n\n", it.URL)
		fmt.Fprintf(&b, "%s\n\n", it.Summary)
	}

	_, err := io.WriteString(w, b.String())
	return err
}
