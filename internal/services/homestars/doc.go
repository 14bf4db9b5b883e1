// Package homestars scrapes HomeStars company pages directly, discovering
// each listing through a web search rather than guessing slugs. It costs
// nothing per lookup, which makes it the cheap alternative to the paid
// extraction API for the same columns.
package homestars
