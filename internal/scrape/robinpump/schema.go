package robinpump

// The extraction schema is data, not code: each field names its locator so a
// selector change on the site is a one-line edit here. Locators resolve
// relative to a scope element (the card anchor for listings, the document or
// the h1's parent for details). An empty Selector means the scope element
// itself; Contains switches the locator from querySelector to a scan over
// all matches picking the first whose text contains the substring.
type fieldLocator struct {
	Field    string `json:"field"`
	Scope    string `json:"scope,omitempty"`
	Selector string `json:"selector,omitempty"`
	Attr     string `json:"attr,omitempty"`
	Contains string `json:"contains,omitempty"`
}

const (
	scopeDocument      = "document"
	scopeHeadingParent = "headingParent"

	attrText       = ""
	attrHref       = "href"
	attrSrc        = "src"
	attrStyleWidth = "style.width"
)

// cardMarker is the listing's project-card anchor. Its absence after the
// bounded wait fails the whole request.
const cardMarker = "a[data-testid='project-card']"

var cardSchema = []fieldLocator{
	{Field: "link", Attr: attrHref},
	{Field: "title", Selector: "h3"},
	{Field: "symbol", Selector: ".text-muted-foreground.truncate"},
	{Field: "description", Selector: "p"},
	{Field: "creator", Selector: ".font-mono"},
	{Field: "age", Selector: ".shrink-0.whitespace-nowrap"},
	{Field: "marketCap", Selector: ".font-semibold.text-foreground"},
	// The signed 24h change has no stable hook of its own; the red/green
	// color classes are what distinguish it from neighboring text.
	{Field: "change", Selector: ".text-red-500, .text-green-500"},
	// Progress lives in an inline style width on the gradient bar, not in a
	// data attribute.
	{Field: "progress", Selector: ".bg-gradient-to-r", Attr: attrStyleWidth},
	{Field: "image", Selector: "img", Attr: attrSrc},
}

var detailSchema = []fieldLocator{
	{Field: "title", Scope: scopeDocument, Selector: "h1"},
	{Field: "symbol", Scope: scopeHeadingParent, Selector: ".font-medium"},
	{Field: "description", Scope: scopeDocument, Selector: ".bg-card.border.border-border.rounded-2xl.px-4.py-3 p"},
	{Field: "marketCap", Scope: scopeDocument, Selector: ".text-3xl.font-bold"},
	// Price and percent-since-launch share one generic styling class and are
	// only told apart by substring sniffing. Known-brittle: if the site's
	// markup or copy changes these degrade to nil instead of failing loudly.
	{Field: "price", Scope: scopeDocument, Selector: ".text-sm.font-semibold", Contains: "$0."},
	{Field: "fromLaunch", Scope: scopeDocument, Selector: ".text-sm.font-semibold", Contains: "%"},
	{Field: "progress", Scope: scopeDocument, Selector: ".bg-gradient-to-r", Attr: attrStyleWidth},
}
