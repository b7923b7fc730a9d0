// Package toc builds the navigation structures shown next to a rendered
// API tree and decides which node a browser path refers to.
//
// [ComputeTagGroups] buckets operations, webhooks or models by tag,
// [ComputeAPITree] flattens those buckets into an ordered table of
// contents, and [ResolveRelativePath] plus [Locate] map a request path
// onto the tree:
//
//	items := toc.ComputeAPITree(svc, toc.Config{HideInternal: true})
//	rel := toc.ResolveRelativePath(r.URL.Path, "/docs", true)
//	res := toc.Locate(svc, items, rel, true)
//	switch res.Kind {
//	case toc.ResolutionRedirectFirst, toc.ResolutionRedirectRoot:
//	    // navigate to res.RedirectTo
//	case toc.ResolutionService, toc.ResolutionChild:
//	    // render
//	}
//
// Everything here is a pure function of its inputs.
package toc
