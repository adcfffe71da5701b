package dockerfile

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAppendPreservesOrder(t *testing.T) {
	f := NewFragment()
	require.NoError(t, f.Run("echo one"))
	require.NoError(t, f.Run("echo two"))
	require.NoError(t, f.Run("echo three"))

	instructions := f.Instructions()
	require.Len(t, instructions, 3)
	require.Equal(t, []string{"RUN echo one"}, instructions[0].Lines())
	require.Equal(t, []string{"RUN echo two"}, instructions[1].Lines())
	require.Equal(t, []string{"RUN echo three"}, instructions[2].Lines())
}

func TestMergeAppendsWithoutReordering(t *testing.T) {
	left := NewFragment()
	require.NoError(t, left.Run("echo left"))

	right := NewFragment()
	require.NoError(t, right.Run("echo right-1"))
	require.NoError(t, right.Run("echo right-2"))

	require.NoError(t, left.Merge(right))
	require.Equal(t, 3, left.Len())
	require.Equal(t, []string{"RUN echo right-2"}, left.Instructions()[2].Lines())
	// The right-hand side is untouched.
	require.Equal(t, 2, right.Len())
}

func TestMergeDoesNotAlias(t *testing.T) {
	left := NewFragment()
	right := NewFragment()
	require.NoError(t, right.Run("echo shared"))
	require.NoError(t, left.Merge(right))

	require.NoError(t, right.Run("echo later"))
	require.Equal(t, 1, left.Len())
}

func TestMergeDeepCopiesSlicePayloads(t *testing.T) {
	right := NewFragment()
	require.NoError(t, right.Append(RunMultiple{Commands: []string{"echo a", "echo b"}}))

	left := NewFragment()
	require.NoError(t, left.Merge(right))

	original := right.instructions[0].(RunMultiple)
	original.Commands[0] = "mutated"

	merged := left.Instructions()[0].(RunMultiple)
	require.Equal(t, "echo a", merged.Commands[0])
}

func TestMergeIsAssociative(t *testing.T) {
	build := func() (*Fragment, *Fragment, *Fragment) {
		a := NewFragment()
		require.NoError(t, a.Run("echo a"))
		b := NewFragment()
		require.NoError(t, b.Run("echo b"))
		c := NewFragment()
		require.NoError(t, c.Run("echo c"))
		return a, b, c
	}

	// (a + b) + c
	a1, b1, c1 := build()
	require.NoError(t, a1.Merge(b1))
	require.NoError(t, a1.Merge(c1))

	// a + (b + c)
	a2, b2, c2 := build()
	require.NoError(t, b2.Merge(c2))
	require.NoError(t, a2.Merge(b2))

	require.Equal(t, a1.Instructions(), a2.Instructions())
}

func TestMergeRejectsImageFragment(t *testing.T) {
	left := NewFragment()
	image := NewUbuntuFragment("myimage", "ubuntu:24.04")

	err := left.Merge(image)
	require.ErrorIs(t, err, ErrMergeKind)
	require.Equal(t, 0, left.Len())
}

func TestImageFragmentAcceptsPartialMerge(t *testing.T) {
	image := NewUbuntuFragment("myimage", "ubuntu:24.04")
	partial := NewFragment()
	require.NoError(t, partial.Run("echo partial"))

	require.NoError(t, image.Merge(partial))
	require.Equal(t, 2, image.Len())
}

func TestAppendAfterRenderFails(t *testing.T) {
	f := NewUbuntuFragment("myimage", "ubuntu:24.04")
	require.NoError(t, f.Run("echo hello"))

	_, err := Render(f)
	require.NoError(t, err)

	require.ErrorIs(t, f.Run("echo too late"), ErrFinalized)
	require.ErrorIs(t, f.Merge(NewFragment()), ErrFinalized)
}

func TestInstructionsReturnsCopy(t *testing.T) {
	f := NewFragment()
	require.NoError(t, f.Run("echo hello"))

	instructions := f.Instructions()
	instructions[0] = Run{Command: "echo mutated"}
	require.Equal(t, []string{"RUN echo hello"}, f.Instructions()[0].Lines())
}

func TestUserDefaultsToUserNameArg(t *testing.T) {
	f := NewFragment()
	require.NoError(t, f.User(""))
	require.Equal(t, []string{"USER ${USER_NAME}"}, f.Instructions()[0].Lines())

	require.NoError(t, f.Root())
	require.Equal(t, []string{"USER root"}, f.Instructions()[1].Lines())
}
