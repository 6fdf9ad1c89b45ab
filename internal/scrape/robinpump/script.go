package robinpump

import (
	"encoding/json"
	"fmt"
	"time"
)

// readField mirrors the schema's locator semantics in page context. It is
// shared by both extraction scripts.
const readFieldJS = `
function readField(scopeEl, loc) {
	var el = null;
	if (loc.contains) {
		var all = scopeEl.querySelectorAll(loc.selector);
		for (var i = 0; i < all.length; i++) {
			if ((all[i].textContent || '').indexOf(loc.contains) !== -1) {
				el = all[i];
				break;
			}
		}
	} else if (loc.selector) {
		el = scopeEl.querySelector(loc.selector);
	} else {
		el = scopeEl;
	}
	if (!el) return null;
	if (loc.attr === 'href') return el.getAttribute('href');
	if (loc.attr === 'src') return el.src || null;
	if (loc.attr === 'style.width') return (el.style && el.style.width) || null;
	var t = el.textContent;
	return t ? t.trim() : null;
}`

// autoScrollScript walks the page down in fixed increments until the scrolled
// distance covers the full scrollable height, which is what makes the site
// lazy-load the rest of its cards. Resolves once the bottom is reached.
func autoScrollScript(step int, interval time.Duration) string {
	return fmt.Sprintf(`new Promise(function(resolve) {
	var total = 0;
	var timer = setInterval(function() {
		window.scrollBy(0, %d);
		total += %d;
		if (total >= document.body.scrollHeight) {
			clearInterval(timer);
			resolve(true);
		}
	}, %d);
})`, step, step, interval.Milliseconds())
}

// listingScript extracts every project card in one evaluation, returning the
// schema fields plus the list of locators that missed per card. Relative
// links resolve against the site origin.
func listingScript(baseURL string) string {
	schema, _ := json.Marshal(cardSchema)
	origin, _ := json.Marshal(baseURL)

	return fmt.Sprintf(`(function(schema, origin) {
	%s
	var out = [];
	document.querySelectorAll(%q).forEach(function(card) {
		var fields = {};
		var missing = [];
		schema.forEach(function(loc) {
			var v = readField(card, loc);
			if (v === null) missing.push(loc.field);
			fields[loc.field] = v;
		});
		if (fields.link) fields.link = origin + fields.link;
		out.push({ fields: fields, missing: missing });
	});
	return out;
})(%s, %s)`, readFieldJS, cardMarker, schema, origin)
}

// detailScript extracts the detail-page field set in one evaluation.
func detailScript() string {
	schema, _ := json.Marshal(detailSchema)

	return fmt.Sprintf(`(function(schema) {
	%s
	function resolveScope(scope) {
		if (scope === 'headingParent') {
			var h = document.querySelector('h1');
			return h ? h.parentElement : null;
		}
		return document;
	}
	var fields = {};
	var missing = [];
	schema.forEach(function(loc) {
		var scopeEl = resolveScope(loc.scope);
		var v = scopeEl ? readField(scopeEl, loc) : null;
		if (v === null) missing.push(loc.field);
		fields[loc.field] = v;
	});
	return { fields: fields, missing: missing };
})(%s)`, readFieldJS, schema)
}
