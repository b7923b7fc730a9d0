// Package pathutil provides JSON Pointer and URL slug helpers used while
// walking OpenAPI documents.
//
// The primary type is [PointerBuilder], which uses push/pop semantics to
// track the decoded key path of a recursive walk and only materializes the
// encoded RFC 6901 pointer when asked. This keeps the walker from building
// intermediate strings for keys that never become nodes.
//
// # PointerBuilder Usage
//
// Use [Get] to obtain a pooled PointerBuilder, and [Put] to return it:
//
//	ptr := pathutil.Get()
//	defer pathutil.Put(ptr)
//
//	ptr.Push("paths")
//	ptr.Push("/pets")
//	ptr.Pointer() // "/paths/~1pets"
//	ptr.Pop()
//
// # Fragments
//
// [EncodeFragment] and [DecodeFragment] escape a single reference token
// ("~" as "~0", "/" as "~1"). [Split] turns a pointer or "#"-prefixed
// reference into its decoded tokens.
//
// # Slugs
//
// [Slugify] derives the URL-safe identifier used for operation URIs when no
// stable interface identifier is available:
//
//	pathutil.Slugify("/pets/{petId}") // "pets-petId"
//
// # Output Path Sanitization
//
// [SanitizeOutputPath] validates and cleans output file paths for security.
// It rejects symlinks:
//
//	safe, err := pathutil.SanitizeOutputPath(userProvidedPath)
//	if err != nil {
//	    return err
//	}
package pathutil
