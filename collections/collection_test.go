package collections_test

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/hasbyte1/go-collections/collections"
)

// ─────────────────────────────────────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────────────────────────────────────

func ints(ns ...int) *collections.Collection[int, int] { return collections.New(ns...) }

func isEven(n, _ int) bool { return n%2 == 0 }

func entries[K comparable, V any](pairs ...any) []collections.Entry[K, V] {
	out := make([]collections.Entry[K, V], 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, collections.Entry[K, V]{Key: pairs[i].(K), Value: pairs[i+1].(V)})
	}
	return out
}

func requireEntries[K comparable, V any](t *testing.T, want []collections.Entry[K, V], c *collections.Collection[K, V]) {
	t.Helper()
	if diff := cmp.Diff(want, c.Entries()); diff != "" {
		t.Fatalf("entries mismatch (-want +got):\n%s", diff)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Constructors
// ─────────────────────────────────────────────────────────────────────────────

func TestNew(t *testing.T) {
	c := collections.New(1, 2, 3)
	require.Equal(t, []int{1, 2, 3}, c.All())
	require.Equal(t, []int{0, 1, 2}, c.Keys())
}

func TestFrom(t *testing.T) {
	s := []string{"a", "b", "c"}
	c := collections.From(s)
	s[0] = "z" // mutate original – should not affect the collection
	require.Equal(t, "a", c.All()[0])
}

func TestEmpty(t *testing.T) {
	c := collections.Empty[string, int]()
	require.Zero(t, c.Count())
	require.True(t, c.IsEmpty())
}

func TestFromMap(t *testing.T) {
	c := collections.FromMap(map[string]int{"b": 2, "c": 3, "a": 1})
	require.Equal(t, []string{"a", "b", "c"}, c.Keys())

	n := collections.FromMap(map[int]string{10: "ten", 2: "two", 33: "thirty-three"})
	require.Equal(t, []int{2, 10, 33}, n.Keys())
}

func TestFromEntries(t *testing.T) {
	c := collections.FromEntries(
		collections.Entry[string, int]{Key: "x", Value: 1},
		collections.Entry[string, int]{Key: "y", Value: 2},
		collections.Entry[string, int]{Key: "x", Value: 3},
	)
	requireEntries(t, entries[string, int]("x", 3, "y", 2), c)
}

func TestRange(t *testing.T) {
	require.Equal(t, []int{1, 2, 3, 4}, collections.Range(1, 4).All())
	require.Equal(t, []int{3, 2, 1}, collections.Range(3, 1).All())
	require.Equal(t, []int{7}, collections.Range(7, 7).All())
}

func TestTimes(t *testing.T) {
	c := collections.Times(3, func(i int) int { return i * i })
	require.Equal(t, []int{1, 4, 9}, c.All())
	require.True(t, collections.Times(0, func(i int) int { return i }).IsEmpty())
}

func TestCollectFromSource(t *testing.T) {
	c, err := collections.Collect[int, int](collections.LazyRange(1, 3))
	require.NoError(t, err)
	require.Equal(t, []int{1, 2, 3}, c.All())
}

// ─────────────────────────────────────────────────────────────────────────────
// Accessors
// ─────────────────────────────────────────────────────────────────────────────

func TestGet(t *testing.T) {
	c := ints(10, 20, 30)
	v, ok := c.Get(1)
	require.True(t, ok)
	require.Equal(t, 20, v)

	_, ok = c.Get(99)
	require.False(t, ok)
}

func TestHas(t *testing.T) {
	c := collections.FromMap(map[string]int{"a": 1})
	require.True(t, c.Has("a"))
	require.False(t, c.Has("b"))
}

func TestNth(t *testing.T) {
	c := ints(10, 20, 30).Filter(func(n, _ int) bool { return n > 10 })
	v, err := c.Nth(0)
	require.NoError(t, err)
	require.Equal(t, 20, v)

	_, err = c.Nth(5)
	require.ErrorIs(t, err, collections.ErrIndexOutOfRange)
}

func TestValuesReindexes(t *testing.T) {
	c := ints(1, 2, 3, 4).Filter(isEven)
	require.Equal(t, []int{1, 3}, c.Keys())
	require.Equal(t, []int{0, 1}, c.Values().Keys())
}

func TestToMap(t *testing.T) {
	m := ints(5, 6).ToMap()
	require.Equal(t, map[int]int{0: 5, 1: 6}, m)
}

func TestToJSON(t *testing.T) {
	b, err := ints(1, 2, 3).ToJSON()
	require.NoError(t, err)
	require.JSONEq(t, `[1,2,3]`, string(b))

	b, err = ints(1, 2, 3, 4).Filter(isEven).ToJSON()
	require.NoError(t, err)
	require.Equal(t, `{"1":2,"3":4}`, string(b))
}

func TestToJSONRejectsCollidingMemberNames(t *testing.T) {
	c := collections.Empty[any, string]().Put(1, "int").Put("1", "string")
	_, err := c.ToJSON()
	require.ErrorIs(t, err, collections.ErrJSONKeyCollision)

	ok := collections.Empty[any, string]().Put(1, "int").Put("2", "string")
	b, err := ok.ToJSON()
	require.NoError(t, err)
	require.Equal(t, `{"1":"int","2":"string"}`, string(b))
}

func TestString(t *testing.T) {
	require.Equal(t, `[1,2]`, ints(1, 2).String())
	require.Equal(t, `[]`, collections.Empty[int, int]().String())
}

// ─────────────────────────────────────────────────────────────────────────────
// In-place mutators
// ─────────────────────────────────────────────────────────────────────────────

func TestPush(t *testing.T) {
	c := ints(1)
	same := c.Push(2, 3)
	require.Same(t, c, same)
	require.Equal(t, []int{1, 2, 3}, c.All())
	require.Equal(t, []int{0, 1, 2}, c.Keys())
}

func TestPushAfterFilterUsesNextKey(t *testing.T) {
	c := ints(1, 2, 3, 4).Filter(isEven) // keys 1, 3
	c.Push(6)
	require.Equal(t, []int{1, 3, 4}, c.Keys())
}

func TestPushAnyKeys(t *testing.T) {
	c := collections.Empty[any, string]()
	c.Push("a")
	c.Put("name", "b")
	c.Push("c")
	require.Equal(t, []any{0, "name", 1}, c.Keys())
}

func TestPushPanicsOnStringKeys(t *testing.T) {
	c := collections.Empty[string, int]()
	require.Panics(t, func() { c.Push(1) })
}

func TestPut(t *testing.T) {
	c := collections.Empty[string, int]().Put("a", 1).Put("b", 2).Put("a", 3)
	requireEntries(t, entries[string, int]("a", 3, "b", 2), c)
}

func TestPop(t *testing.T) {
	c := ints(1, 2, 3)
	v, err := c.Pop()
	require.NoError(t, err)
	require.Equal(t, 3, v)
	require.Equal(t, []int{1, 2}, c.All())

	c.Push(9)
	require.Equal(t, []int{0, 1, 2}, c.Keys())

	_, err = collections.Empty[int, int]().Pop()
	require.ErrorIs(t, err, collections.ErrEmptyCollection)
}

func TestIterSnapshotSurvivesPush(t *testing.T) {
	c := ints(1, 2)
	it := c.Iter()
	defer it.Close()
	c.Push(3)

	var got []int
	for _, v, ok := it.Next(); ok; _, v, ok = it.Next() {
		got = append(got, v)
	}
	require.Equal(t, []int{1, 2}, got)
}

func TestIterSnapshotIgnoresOverwrite(t *testing.T) {
	c := ints(1, 2, 3)
	it := c.Iter()
	defer it.Close()
	c.Put(0, 100)
	_, err := c.Pop()
	require.NoError(t, err)
	c.Push(300)

	var got []int
	for _, v, ok := it.Next(); ok; _, v, ok = it.Next() {
		got = append(got, v)
	}
	require.Equal(t, []int{1, 2, 3}, got)
	require.Equal(t, []int{100, 2, 300}, c.All())
}

func TestLazyRunIgnoresMutationMidRun(t *testing.T) {
	c := ints(1, 2, 3)
	var got []int
	err := c.Lazy().Each(func(v, k int) bool {
		c.Put(2, v*100)
		got = append(got, v)
		return true
	})
	require.NoError(t, err)
	require.Equal(t, []int{1, 2, 3}, got)

	next, err := c.Lazy().All()
	require.NoError(t, err)
	require.Equal(t, []int{1, 2, 300}, next)
}

func TestForget(t *testing.T) {
	c := collections.FromEntries(entries[string, int]("a", 1, "b", 2, "c", 3)...)
	requireEntries(t, entries[string, int]("a", 1, "c", 3), c.Forget("b"))
	require.Equal(t, 3, c.Count())
}

// ─────────────────────────────────────────────────────────────────────────────
// Iteration & debugging
// ─────────────────────────────────────────────────────────────────────────────

func TestEach(t *testing.T) {
	var keys, values []int
	ints(5, 6).Each(func(v, k int) {
		keys = append(keys, k)
		values = append(values, v)
	})
	require.Equal(t, []int{0, 1}, keys)
	require.Equal(t, []int{5, 6}, values)
}

func TestTap(t *testing.T) {
	called := false
	c := ints(1).Tap(func(*collections.Collection[int, int]) { called = true })
	require.True(t, called)
	require.Equal(t, []int{1}, c.All())
}

func TestSeq(t *testing.T) {
	sum := 0
	for k, v := range ints(1, 2, 3).Seq() {
		sum += k * v
	}
	require.Equal(t, 0*1+1*2+2*3, sum)
}

func TestDump(t *testing.T) {
	var buf bytes.Buffer
	collections.Configure(collections.Config{Logger: zerolog.New(&buf)})
	t.Cleanup(func() { collections.Configure(collections.DefaultConfig()) })

	ints(1, 2, 3).Dump()
	require.JSONEq(t, `{"level":"debug","count":3,"collection":[1,2,3],"message":"dump"}`, buf.String())
}

// ─────────────────────────────────────────────────────────────────────────────
// Search & Lookup
// ─────────────────────────────────────────────────────────────────────────────

func TestFirst(t *testing.T) {
	v, err := ints(1, 2, 3).First()
	require.NoError(t, err)
	require.Equal(t, 1, v)

	v, err = ints(1, 2, 3).First(isEven)
	require.NoError(t, err)
	require.Equal(t, 2, v)

	_, err = ints(1, 3).First(isEven)
	require.ErrorIs(t, err, collections.ErrNoMatchingItems)
	require.ErrorIs(t, err, collections.ErrEmptyCollection)

	_, err = ints().First()
	require.ErrorIs(t, err, collections.ErrEmptyCollection)
	require.NotErrorIs(t, err, collections.ErrNoMatchingItems)
}

func TestLast(t *testing.T) {
	v, err := ints(1, 2, 3, 4, 5).Last(isEven)
	require.NoError(t, err)
	require.Equal(t, 4, v)

	v, err = ints(1, 2, 3).Last()
	require.NoError(t, err)
	require.Equal(t, 3, v)

	_, err = ints().Last()
	require.ErrorIs(t, err, collections.ErrEmptyCollection)
}

func TestFirstOrLastOr(t *testing.T) {
	require.Equal(t, -1, ints().FirstOr(-1))
	require.Equal(t, -1, ints(1, 3).LastOr(-1, isEven))
	require.Equal(t, 2, ints(1, 2).FirstOr(-1, isEven))
}

func TestContains(t *testing.T) {
	require.True(t, ints(1, 2, 3).Contains(isEven))
	require.False(t, ints(1, 3).Contains(isEven))
}

func TestContainsValue(t *testing.T) {
	c := collections.New[any](1, "1", []int{1, 2})
	require.True(t, c.ContainsValue("1"))
	require.True(t, c.ContainsValue([]int{1, 2}))
	require.False(t, c.ContainsValue(int64(1)))
	require.False(t, c.ContainsValue("2"))
}

func TestEvery(t *testing.T) {
	require.True(t, ints(2, 4).Every(isEven))
	require.False(t, ints(2, 3).Every(isEven))
	require.True(t, ints().Every(isEven))
}

func TestSearch(t *testing.T) {
	k, ok := ints(1, 3, 4).Search(isEven)
	require.True(t, ok)
	require.Equal(t, 2, k)

	_, ok = ints(1).Search(isEven)
	require.False(t, ok)
}

func TestRandom(t *testing.T) {
	c := ints(1, 2, 3)
	v, err := c.Random()
	require.NoError(t, err)
	require.Contains(t, c.All(), v)

	_, err = ints().Random()
	require.ErrorIs(t, err, collections.ErrEmptyCollection)
}

// ─────────────────────────────────────────────────────────────────────────────
// Transformation
// ─────────────────────────────────────────────────────────────────────────────

func TestMapMethod(t *testing.T) {
	c := ints(1, 2, 3).Filter(func(n, _ int) bool { return n > 1 }).Map(func(n, _ int) int { return n * 10 })
	requireEntries(t, entries[int, int](1, 20, 2, 30), c)
}

func TestFilter(t *testing.T) {
	c := ints(1, 2, 3, 4, 5, 6).Filter(isEven)
	require.Equal(t, []int{2, 4, 6}, c.All())
	require.Equal(t, []int{1, 3, 5}, c.Keys())
}

func TestReject(t *testing.T) {
	require.Equal(t, []int{1, 3, 5}, ints(1, 2, 3, 4, 5, 6).Reject(isEven).All())
}

func TestWhere(t *testing.T) {
	c := collections.New(
		map[string]any{"name": "Ada", "dept": "IT"},
		map[string]any{"name": "Bob", "dept": "HR"},
		map[string]any{"name": "Cy", "dept": "IT"},
	)
	got := collections.Map(c.Where("dept", "IT"), func(m map[string]any, _ int) any { return m["name"] })
	require.Equal(t, []any{"Ada", "Cy"}, got.All())
}

func TestPluck(t *testing.T) {
	c := collections.New(
		map[string]any{"user": map[string]any{"name": "Ada"}},
		map[string]any{"user": map[string]any{}},
	)
	require.Equal(t, []any{"Ada", nil}, c.Pluck("user.name").All())
}

func TestUnique(t *testing.T) {
	c := ints(1, 2, 2, 3, 1).Unique()
	requireEntries(t, entries[int, int](0, 1, 1, 2, 3, 3), c)

	words := collections.New("a", "bb", "cc", "d").Unique(func(s string, _ int) any { return len(s) })
	require.Equal(t, []string{"a", "bb"}, words.All())

	mixed := collections.New[any](1, int64(1), 1)
	require.Equal(t, []any{1, int64(1)}, mixed.Unique().All())
}

func TestDuplicates(t *testing.T) {
	c := ints(1, 2, 2, 3, 1).Duplicates()
	requireEntries(t, entries[int, int](2, 2, 4, 1), c)
}

func TestReverse(t *testing.T) {
	c := ints(1, 2, 3).Reverse()
	requireEntries(t, entries[int, int](2, 3, 1, 2, 0, 1), c)
}

func TestShuffle(t *testing.T) {
	c := collections.Range(1, 20)
	require.ElementsMatch(t, c.All(), c.Shuffle().All())
}

func TestPrepend(t *testing.T) {
	c := ints(2, 3).Prepend(0, 1)
	require.Equal(t, []int{0, 1, 2, 3}, c.All())
	require.Equal(t, []int{0, 1, 2, 3}, c.Keys())
}

// ─────────────────────────────────────────────────────────────────────────────
// Sorting
// ─────────────────────────────────────────────────────────────────────────────

func TestSortFunc(t *testing.T) {
	c := collections.New("bb", "a", "cc", "d").SortFunc(func(a, b string) int { return len(a) - len(b) })
	require.Equal(t, []string{"a", "d", "bb", "cc"}, c.All())
	require.Equal(t, []int{1, 3, 0, 2}, c.Keys())
}

func TestSortBy(t *testing.T) {
	require.Equal(t, []int{1, 2, 3}, ints(3, 1, 2).SortBy(func(n int) float64 { return float64(n) }).All())
	require.Equal(t, []int{3, 2, 1}, ints(3, 1, 2).SortByDesc(func(n int) float64 { return float64(n) }).All())
}

func TestSortKeys(t *testing.T) {
	c := collections.FromEntries(entries[string, int]("b", 1, "c", 2, "a", 3)...)
	require.Equal(t, []string{"a", "b", "c"}, c.SortKeys().Keys())
	require.Equal(t, []string{"c", "b", "a"}, c.SortKeysDesc().Keys())
}

// ─────────────────────────────────────────────────────────────────────────────
// Combining
// ─────────────────────────────────────────────────────────────────────────────

func TestConcatResequencesIntKeys(t *testing.T) {
	c := ints(1, 2).Concat(ints(3, 4))
	requireEntries(t, entries[int, int](0, 1, 1, 2, 2, 3, 3, 4), c)
}

func TestConcatOverwritesOtherKeys(t *testing.T) {
	a := collections.FromEntries(entries[string, int]("a", 1, "b", 2)...)
	b := collections.FromEntries(entries[string, int]("b", 3, "c", 4)...)
	requireEntries(t, entries[string, int]("a", 1, "b", 3, "c", 4), a.Concat(b))
}

func TestZip(t *testing.T) {
	z := collections.Zip(ints(1, 2, 3), ints(4, 5))
	require.Equal(t, 2, z.Count())
	first, err := z.First()
	require.NoError(t, err)
	require.Equal(t, []int{1, 4}, first.All())
}

func TestZipNested(t *testing.T) {
	z := collections.Zip(ints(1, 2), ints(3, 4))
	zz := collections.Zip(z, z)
	require.Equal(t, 2, zz.Count())

	second, err := zz.Nth(1)
	require.NoError(t, err)
	inner, err := second.First()
	require.NoError(t, err)
	require.Equal(t, []int{2, 4}, inner.All())
}

// ─────────────────────────────────────────────────────────────────────────────
// Slicing & Pagination
// ─────────────────────────────────────────────────────────────────────────────

func TestSlice(t *testing.T) {
	c := ints(1, 2, 3, 4, 5)
	tests := []struct {
		name   string
		offset int
		length []int
		want   []int
	}{
		{"offset only", 2, nil, []int{3, 4, 5}},
		{"offset and length", 1, []int{2}, []int{2, 3}},
		{"negative offset", -2, nil, []int{4, 5}},
		{"negative length", 1, []int{-1}, []int{2, 3, 4}},
		{"both negative", -3, []int{-1}, []int{3, 4}},
		{"length past end", 3, []int{10}, []int{4, 5}},
		{"offset past end", 9, nil, nil},
		{"negative length swallows", 2, []int{-5}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Slice(tt.offset, tt.length...).All()
			if len(tt.want) == 0 {
				require.Empty(t, got)
				return
			}
			require.Equal(t, tt.want, got)
		})
	}
}

func TestSliceKeepsKeys(t *testing.T) {
	require.Equal(t, []int{3, 4}, ints(1, 2, 3, 4, 5).Slice(3).Keys())
}

func TestTake(t *testing.T) {
	require.Equal(t, []int{1, 2}, ints(1, 2, 3).Take(2).All())
	require.Equal(t, []int{2, 3}, ints(1, 2, 3).Take(-2).All())
	require.Equal(t, []int{1, 2, 3}, ints(1, 2, 3).Take(10).All())
	require.Empty(t, ints(1, 2, 3).Take(0).All())
}

func TestSkip(t *testing.T) {
	require.Equal(t, []int{3}, ints(1, 2, 3).Skip(2).All())
	require.Equal(t, []int{2, 3}, ints(1, 2, 3).Skip(-2).All())
}

func TestTakeSkipUntilWhile(t *testing.T) {
	c := ints(1, 2, 3, 4, 5)
	atLeast3 := func(n, _ int) bool { return n >= 3 }
	below3 := func(n, _ int) bool { return n < 3 }

	require.Equal(t, []int{1, 2}, c.TakeUntil(atLeast3).All())
	require.Equal(t, []int{1, 2}, c.TakeWhile(below3).All())
	require.Equal(t, []int{3, 4, 5}, c.SkipUntil(atLeast3).All())
	require.Equal(t, []int{3, 4, 5}, c.SkipWhile(below3).All())
	require.Equal(t, []int{2, 3, 4}, c.SkipWhile(below3).Keys())
}

func TestChunk(t *testing.T) {
	chunks, err := collections.Chunk(collections.Range(1, 10), 3)
	require.NoError(t, err)

	var sizes []int
	chunks.Each(func(chunk *collections.Collection[int, int], _ int) { sizes = append(sizes, chunk.Count()) })
	require.Equal(t, []int{3, 3, 3, 1}, sizes)

	last, err := chunks.Last()
	require.NoError(t, err)
	require.Equal(t, []int{9}, last.Keys())
}

func TestChunkOfChunks(t *testing.T) {
	chunks, err := collections.Chunk(collections.Range(1, 10), 3)
	require.NoError(t, err)
	pages, err := collections.Chunk(chunks, 2)
	require.NoError(t, err)
	require.Equal(t, 2, pages.Count())
	require.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, collections.Collapse(collections.Collapse(pages)).All())
}

func TestChunkInvalidSize(t *testing.T) {
	for _, size := range []int{0, -1} {
		_, err := collections.Chunk(ints(1, 2), size)
		require.ErrorIs(t, err, collections.ErrInvalidChunkSize)
		require.ErrorIs(t, err, collections.ErrInvalidArgument)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Aggregation
// ─────────────────────────────────────────────────────────────────────────────

func TestSumAvgMinMaxBy(t *testing.T) {
	type item struct{ price float64 }
	c := collections.New(item{3}, item{1}, item{2})
	price := func(i item) float64 { return i.price }

	require.InDelta(t, 6.0, c.SumBy(price), 1e-9)

	avg, err := c.AvgBy(price)
	require.NoError(t, err)
	require.InDelta(t, 2.0, avg, 1e-9)

	lo, err := c.MinBy(price)
	require.NoError(t, err)
	require.Equal(t, item{1}, lo)

	hi, err := c.MaxBy(price)
	require.NoError(t, err)
	require.Equal(t, item{3}, hi)

	_, err = collections.Empty[int, item]().AvgBy(price)
	require.ErrorIs(t, err, collections.ErrEmptyCollection)
	_, err = collections.Empty[int, item]().MaxBy(price)
	require.ErrorIs(t, err, collections.ErrEmptyCollection)
}

func TestReduceMethod(t *testing.T) {
	add := func(carry, n, _ int) int { return carry + n }

	v, err := ints(1, 2, 3).Reduce(add)
	require.NoError(t, err)
	require.Equal(t, 6, v)

	v, err = ints(1, 2, 3).Reduce(add, 10)
	require.NoError(t, err)
	require.Equal(t, 16, v)

	v, err = ints().Reduce(add, 7)
	require.NoError(t, err)
	require.Equal(t, 7, v)

	_, err = ints().Reduce(add)
	require.ErrorIs(t, err, collections.ErrEmptyCollection)
}

// ─────────────────────────────────────────────────────────────────────────────
// Grouping / Partitioning
// ─────────────────────────────────────────────────────────────────────────────

func TestPartition(t *testing.T) {
	evens, odds := ints(1, 2, 3, 4, 5).Partition(isEven)
	requireEntries(t, entries[int, int](1, 2, 3, 4), evens)
	requireEntries(t, entries[int, int](0, 1, 2, 3, 4, 5), odds)
}

type employee struct {
	Name       string
	Department string `json:"dept"`
}

func TestGroupByField(t *testing.T) {
	c := collections.New(
		employee{"Ada", "IT"},
		employee{"Bob", "HR"},
		employee{"Cy", "IT"},
	)
	groups := collections.GroupByField(c, "dept")
	require.Equal(t, []any{"IT", "HR"}, groups.Keys())

	it, ok := groups.Get("IT")
	require.True(t, ok)
	require.Equal(t, []int{0, 2}, it.Keys())
}

func TestGroupByFieldUnhashable(t *testing.T) {
	c := collections.New(
		map[string]any{"tags": []string{"a"}},
		map[string]any{"tags": []string{"a"}},
	)
	groups := collections.GroupByField(c, "tags")
	require.Equal(t, 1, groups.Count())
}

type tagged struct{ Tag any }

func TestGroupByFieldStructHoldingSlice(t *testing.T) {
	type row struct{ D tagged }
	c := collections.New(
		row{D: tagged{Tag: []int{1}}},
		row{D: tagged{Tag: []int{1}}},
		row{D: tagged{Tag: 2}},
	)
	groups := collections.GroupByField(c, "D")
	require.Equal(t, 2, groups.Count())

	same, ok := groups.Get(tagged{Tag: 2})
	require.True(t, ok)
	require.Equal(t, []int{2}, same.Keys())
}

// ─────────────────────────────────────────────────────────────────────────────
// String helpers
// ─────────────────────────────────────────────────────────────────────────────

func TestJoin(t *testing.T) {
	require.Equal(t, "A, B, C and D", collections.New("A", "B", "C", "D").Join(", ", " and "))
	require.Equal(t, "A and B", collections.New("A", "B").Join(", ", " and "))
	require.Equal(t, "A", collections.New("A").Join(", ", " and "))
	require.Equal(t, "", collections.New[string]().Join(", ", " and "))
	require.Equal(t, "1-2-3", ints(1, 2, 3).Join("-"))
}

func TestImplode(t *testing.T) {
	got := ints(1, 2).Implode("|", func(n int) string { return string(rune('a' + n)) })
	require.Equal(t, "b|c", got)
}

// ─────────────────────────────────────────────────────────────────────────────
// Conditional pipeline
// ─────────────────────────────────────────────────────────────────────────────

func TestWhenUnless(t *testing.T) {
	double := func(c *collections.Collection[int, int]) *collections.Collection[int, int] {
		return c.Map(func(n, _ int) int { return n * 2 })
	}
	require.Equal(t, []int{2}, ints(1).When(true, double).All())
	require.Equal(t, []int{1}, ints(1).When(false, double).All())
	require.Equal(t, []int{1}, ints(1).Unless(true, double).All())
	require.Equal(t, []int{2}, ints(1).WhenNotEmpty(double).All())

	filled := ints().WhenEmpty(func(c *collections.Collection[int, int]) *collections.Collection[int, int] { return c.Push(0) })
	require.Equal(t, []int{0}, filled.All())
}
