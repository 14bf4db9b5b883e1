// Package websearch looks up licensing and review-rating facts about a
// business through an LLM backend with web-search grounding.
//
// The backend is asked to answer with a bare JSON object. Models wrap JSON in
// markdown fences or prose often enough that decoding is deliberately
// tolerant: fences are stripped and the outermost object is extracted before
// unmarshalling, and the license lookup falls back to a regex scan of the raw
// text when no JSON can be recovered.
package websearch
