// Package markdown implements the content source over a directory of
// markdown blog posts.
//
// Posts carry TOML front matter between +++ delimiters for the
// structured fields (title, tags, category, date); the remainder of
// the file is the post body. Unknown front matter keys pass through as
// opaque document metadata.
package markdown
