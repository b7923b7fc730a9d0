package toc

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oasdocs/oasdocs/internal/testutil"
	"github.com/oasdocs/oasdocs/navtree"
)

func transform(t *testing.T, src string) *navtree.ServiceNode {
	t.Helper()
	svc, err := navtree.Transform(testutil.NewDocument(t, src))
	require.NoError(t, err)
	return svc
}

func uris(nodes []*navtree.ChildNode) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.URI)
	}
	return out
}
