// Package web serves the browser front end of nutri: a landing page with the
// food search box, food pages with an adjustable nutrition label, and a small
// JSON API used by both.
//
// Routes:
//
//	GET /                          landing page, ?q= runs a search
//	GET /api/search?q=             search results as JSON
//	GET /foods/{slug}?serving=N    food page with nutrition label
//	GET /api/foods/{slug}/label    label as JSON, ?serving=N
package web
