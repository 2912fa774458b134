// Copyright 2026 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package target

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVariant(t *testing.T) {
	p := Default()
	require.Equal(t, "standard", p.Variant())

	p.Board = "nano"
	require.Equal(t, "micro", p.Variant())

	p.Board = "no-such-board"
	require.Equal(t, "standard", p.Variant(), "unknown boards use the default variant")

	p.Boards = nil
	p.Board = "mega"
	require.Equal(t, "mega", p.Variant())
}

func TestBoardsIsACopy(t *testing.T) {
	bt := Boards()
	bt["uno"] = "changed"
	require.Equal(t, "standard", Boards()["uno"])
	require.Equal(t, []string{"leonardo", "mega", "micro", "nano", "pro", "uno"}, Boards().Names())
}
