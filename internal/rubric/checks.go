package rubric

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/swe363/gradehtml/internal/dom"
)

const (
	listSelector    = "ul, ol"
	headingSelector = "h1, h2, h3, h4, h5, h6"

	// A list that is a direct child of another list instead of an <li>.
	misnestedListSelector = "ul > ul, ol > ul, ul > ol, ol > ol"
)

func todoChecks(opts Options) []Check {
	checks := []Check{
		{"h1_present", "Has an <h1> element", 5, atLeast("h1", 1)},
		{"h2_present", "Has an <h2> element", 4, atLeast("h2", 1)},
		{"p_desc_present", "Has a paragraph with course description", 4, atLeast("p", 1)},
		{"p_strong", "Has a <p> with <strong>", 3, atLeast("p strong", 1)},
		{"p_em", "Has a <p> with <em>", 3, atLeast("p em", 1)},
		{"p_mark", "Has a <p> with <mark>", 3, atLeast("p mark", 1)},
	}

	if opts.TextSensitive {
		checks = append(checks,
			Check{"h3_topics", fmt.Sprintf("Has <h3> %q", opts.TopicsHeading), 1.5, func(doc *dom.Document) bool {
				return doc.FirstContaining("h3", opts.TopicsHeading).Length() > 0
			}},
			Check{"h3_webtech", fmt.Sprintf("Has <h3> %q", opts.WebTechHeading), 1.5, func(doc *dom.Document) bool {
				return doc.FirstContaining("h3", opts.WebTechHeading).Length() > 0
			}},
		)
	} else {
		checks = append(checks, Check{"list_heading", "Has a heading followed by a list", 1.5, func(doc *dom.Document) bool {
			return doc.Any(headingSelector, func(h *goquery.Selection) bool {
				return followingList(h).Length() > 0
			})
		}})
	}

	return append(checks,
		Check{"table_present", "Has a <table> with data", 0, atLeast("table", 1)},
		Check{"img_present", "Has an <img> with alt text", 0, atLeast("img[alt]", 1)},
	)
}

func correctnessChecks(opts Options) []Check {
	var checks []Check

	if opts.TextSensitive {
		checks = append(checks,
			Check{"h1_text", fmt.Sprintf("H1 contains %q", strings.ToUpper(opts.CourseCode)), 4, anyContains("h1", opts.CourseCode)},
			Check{"h2_text", fmt.Sprintf("H2 contains %q", opts.Subtitle), 3, anyContains("h2", opts.Subtitle)},
			Check{"p_desc_text", fmt.Sprintf("Description mentions %s & %s", opts.DescriptionTerm, strings.ToUpper(strings.Join(opts.DescriptionTopics, "/"))), 3, func(doc *dom.Document) bool {
				return doc.Any("p", func(p *goquery.Selection) bool {
					text := p.Text()
					return dom.Contains(text, opts.DescriptionTerm) && dom.ContainsAny(text, opts.DescriptionTopics...)
				})
			}},
			Check{"topics_ul", fmt.Sprintf("%s: list has ≥ %d items", capitalize(opts.TopicsHeading), opts.MinListItems), 4, func(doc *dom.Document) bool {
				h3 := doc.FirstContaining("h3", opts.TopicsHeading)
				return h3.Length() > 0 && filledItems(followingList(h3)) >= opts.MinListItems
			}},
			Check{"frontend_nested", fmt.Sprintf("%s has a nested list (≥%d)", capitalize(opts.FrontendLabel), opts.MinNestedItems), 3.5, nestedUnder(opts, opts.FrontendLabel)},
			Check{"backend_nested", fmt.Sprintf("%s has a nested list (≥%d)", capitalize(opts.BackendLabel), opts.MinNestedItems), 3.5, nestedUnder(opts, opts.BackendLabel)},
			Check{"table_headers", "Table headers present & correct", 3.5, func(doc *dom.Document) bool {
				table := doc.Find("table").First()
				if table.Length() == 0 {
					return false
				}
				var headers []string
				table.Find("thead th").Each(func(_ int, th *goquery.Selection) {
					headers = append(headers, dom.Text(th))
				})
				for _, want := range opts.TableHeaders {
					if !containsPhrase(headers, want) {
						return false
					}
				}
				return true
			}},
			Check{"table_rows", fmt.Sprintf("Table has ≥ %d body rows", opts.MinBodyRows), 3.5, func(doc *dom.Document) bool {
				table := doc.Find("table").First()
				return table.Length() > 0 && table.Find("tbody tr").Has("td").Length() >= opts.MinBodyRows
			}},
			Check{"img_src", fmt.Sprintf("Image src references %s asset", strings.ToUpper(opts.ImageSource)), 2, func(doc *dom.Document) bool {
				img := doc.Find("img").First()
				src, _ := dom.Attr(img, "src")
				return img.Length() > 0 && dom.Contains(src, opts.ImageSource)
			}},
		)
	} else {
		checks = append(checks,
			Check{"h1_text", "H1 has text", 4, anyFilled("h1")},
			Check{"h2_text", "H2 has text", 3, anyFilled("h2")},
			Check{"p_desc_text", "Description paragraph has text", 3, anyFilled("p")},
			Check{"topics_ul", fmt.Sprintf("List after a heading has ≥ %d items", opts.MinListItems), 4, func(doc *dom.Document) bool {
				return doc.Any(headingSelector, func(h *goquery.Selection) bool {
					return filledItems(followingList(h)) >= opts.MinListItems
				})
			}},
			Check{"table_headers", fmt.Sprintf("Table header row has ≥ %d cells", opts.MinHeaderCells), 3.5, func(doc *dom.Document) bool {
				return headerRow(doc.Find("table").First()).Find("th").Length() >= opts.MinHeaderCells
			}},
			Check{"table_rows", fmt.Sprintf("Table has ≥ %d body rows", opts.MinBodyRows), 3.5, func(doc *dom.Document) bool {
				return doc.Find("table").First().Find("tr").Has("td").Length() >= opts.MinBodyRows
			}},
		)
	}

	return append(checks, Check{"img_wh", "Image has numeric width & height", 2, func(doc *dom.Document) bool {
		img := doc.Find("img").First()
		return img.Length() > 0 && dom.NumericAttr(img, "width") && dom.NumericAttr(img, "height")
	}})
}

func qualityChecks(opts Options) []Check {
	checks := []Check{
		{"doctype", "Uses <!DOCTYPE html>", 4, func(doc *dom.Document) bool {
			return doc.HasHTMLDoctype()
		}},
		{"lang", "<html> has lang attribute", 4, func(doc *dom.Document) bool {
			return dom.NonEmptyAttr(doc.Find("html").First(), "lang")
		}},
		{"charset", "Has <meta charset>", 4, hasCharset},
		{"title", "<title> is non-empty", 3, func(doc *dom.Document) bool {
			return dom.Text(doc.Find("head title").First()) != ""
		}},
		{"list_nesting", "Nested lists are inside <li>", 5, func(doc *dom.Document) bool {
			return doc.Count(misnestedListSelector) == 0
		}},
	}

	if opts.TextSensitive {
		checks = append(checks, Check{"thead_tbody", "Table uses <thead> and <tbody>", 5, func(doc *dom.Document) bool {
			table := doc.Find("table").First()
			return table.Find("thead").Length() > 0 && table.Find("tbody").Length() > 0
		}})
	} else {
		checks = append(checks, Check{"table_header_row", "Table marks its header row with <th>", 5, func(doc *dom.Document) bool {
			return headerRow(doc.Find("table").First()).Length() > 0
		}})
	}

	return append(checks, Check{"img_alt", "Image has meaningful alt text", 4, func(doc *dom.Document) bool {
		return dom.NonEmptyAttr(doc.Find("img").First(), "alt")
	}})
}

func atLeast(selector string, n int) Predicate {
	return func(doc *dom.Document) bool {
		return doc.Count(selector) >= n
	}
}

func anyContains(selector, phrase string) Predicate {
	return func(doc *dom.Document) bool {
		return doc.FirstContaining(selector, phrase).Length() > 0
	}
}

func anyFilled(selector string) Predicate {
	return func(doc *dom.Document) bool {
		return doc.Any(selector, func(s *goquery.Selection) bool {
			return dom.Text(s) != ""
		})
	}
}

// nestedUnder checks the list following the web-technologies heading for a
// direct item labelled label that owns a nested list of enough items.
func nestedUnder(opts Options, label string) Predicate {
	return func(doc *dom.Document) bool {
		h3 := doc.FirstContaining("h3", opts.WebTechHeading)
		if h3.Length() == 0 {
			return false
		}
		found := false
		followingList(h3).ChildrenFiltered("li").EachWithBreak(func(_ int, li *goquery.Selection) bool {
			if !strings.Contains(dom.OwnText(li), dom.Normalize(label)) {
				return true
			}
			if filledItems(li.ChildrenFiltered(listSelector).First()) >= opts.MinNestedItems {
				found = true
				return false
			}
			return true
		})
		return found
	}
}

func hasCharset(doc *dom.Document) bool {
	if doc.Count("meta[charset]") > 0 {
		return true
	}
	return doc.Any("meta[http-equiv]", func(m *goquery.Selection) bool {
		equiv, _ := dom.Attr(m, "http-equiv")
		content, _ := dom.Attr(m, "content")
		return strings.EqualFold(strings.TrimSpace(equiv), "content-type") && dom.Contains(content, "charset")
	})
}

// followingList is the first list among the heading's later siblings.
func followingList(heading *goquery.Selection) *goquery.Selection {
	return heading.NextAllFiltered(listSelector).First()
}

// filledItems counts the list's direct <li> children that carry text.
func filledItems(list *goquery.Selection) int {
	n := 0
	list.ChildrenFiltered("li").Each(func(_ int, li *goquery.Selection) {
		if dom.Text(li) != "" {
			n++
		}
	})
	return n
}

// headerRow is the first row of table made of header cells.
func headerRow(table *goquery.Selection) *goquery.Selection {
	return table.Find("tr").Has("th").First()
}

func containsPhrase(texts []string, phrase string) bool {
	for _, t := range texts {
		if dom.Contains(t, phrase) {
			return true
		}
	}
	return false
}

// capitalize upper-cases the first letter for report labels.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
