package library

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/bookshelf/internal/domain"
	"github.com/mmcdole/bookshelf/internal/store"
)

// memStore records saves and can be told to fail.
type memStore struct {
	books   []domain.Book
	saves   int
	loadErr error
	saveErr error
}

func (m *memStore) Load() ([]domain.Book, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	out := make([]domain.Book, len(m.books))
	copy(out, m.books)
	return out, nil
}

func (m *memStore) Save(books []domain.Book) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	m.books = make([]domain.Book, len(books))
	copy(m.books, books)
	return nil
}

func (m *memStore) Close() error { return nil }

func dune() domain.AddRequest {
	return domain.AddRequest{Title: "Dune", Author: "Frank Herbert", Year: "1965", Genre: "Sci-Fi", Read: false}
}

func newService(t *testing.T, books ...domain.Book) (*Service, *memStore) {
	t.Helper()
	ms := &memStore{books: books}
	svc := NewService(ms, nil)
	require.NoError(t, svc.Load())
	return svc, ms
}

func TestAdd_ToEmptyLibrary(t *testing.T) {
	svc, ms := newService(t)

	book, err := svc.Add(dune())
	require.NoError(t, err)

	want := domain.Book{Title: "Dune", Author: "Frank Herbert", Year: 1965, Genre: "Sci-Fi", Read: false}
	assert.Equal(t, want, book)

	books, err := svc.List()
	require.NoError(t, err)
	assert.Equal(t, []domain.Book{want}, books)
	assert.Equal(t, 1, ms.saves)
	assert.Equal(t, []domain.Book{want}, ms.books)
}

func TestAdd_DuplicateTitleAnyCase(t *testing.T) {
	svc, ms := newService(t)

	_, err := svc.Add(dune())
	require.NoError(t, err)

	req := dune()
	req.Title = "dune"
	_, err = svc.Add(req)
	assert.ErrorIs(t, err, domain.ErrDuplicateTitle)
	assert.Equal(t, 1, svc.Len())
	assert.Equal(t, 1, ms.saves)
}

func TestAdd_Validation(t *testing.T) {
	tests := []struct {
		name string
		edit func(r *domain.AddRequest)
		ok   bool
	}{
		{name: "non numeric year", edit: func(r *domain.AddRequest) { r.Year = "abc" }},
		{name: "missing title", edit: func(r *domain.AddRequest) { r.Title = "" }},
		{name: "missing author", edit: func(r *domain.AddRequest) { r.Author = "" }},
		{name: "missing year", edit: func(r *domain.AddRequest) { r.Year = "" }},
		{name: "lone minus", edit: func(r *domain.AddRequest) { r.Year = "-" }},
		{name: "double minus", edit: func(r *domain.AddRequest) { r.Year = "--5" }},
		{name: "plus sign", edit: func(r *domain.AddRequest) { r.Year = "+1965" }},
		{name: "decimal", edit: func(r *domain.AddRequest) { r.Year = "19.65" }},
		{name: "overflow", edit: func(r *domain.AddRequest) { r.Year = "99999999999999999999999" }},
		{name: "negative year", edit: func(r *domain.AddRequest) { r.Year = "-700" }, ok: true},
		{name: "empty genre", edit: func(r *domain.AddRequest) { r.Genre = "" }, ok: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc, ms := newService(t)
			req := dune()
			tc.edit(&req)

			_, err := svc.Add(req)
			if tc.ok {
				require.NoError(t, err)
				assert.Equal(t, 1, svc.Len())
				return
			}
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			assert.Equal(t, 0, svc.Len())
			assert.Equal(t, 0, ms.saves)
		})
	}
}

func TestAdd_SaveFailureKeepsBook(t *testing.T) {
	svc, ms := newService(t)
	ms.saveErr = domain.ErrSaveFailed

	_, err := svc.Add(dune())
	assert.ErrorIs(t, err, domain.ErrSaveFailed)
	assert.True(t, IsPersistError(err))
	assert.Equal(t, 1, svc.Len())
}

func TestEdit_NotFound(t *testing.T) {
	svc, ms := newService(t, domain.Book{Title: "Emma", Author: "Jane Austen", Year: 1815})

	_, err := svc.Edit("Dune", domain.EditRequest{Title: "X"})
	assert.ErrorIs(t, err, domain.ErrBookNotFound)
	assert.Equal(t, []domain.Book{{Title: "Emma", Author: "Jane Austen", Year: 1815}}, svc.Books())
	assert.Equal(t, 0, ms.saves)
}

func TestEdit_EmptyFieldsKeepValues(t *testing.T) {
	orig := domain.Book{Title: "Dune", Author: "Frank Herbert", Year: 1965, Genre: "Sci-Fi", Read: false}

	tests := []struct {
		name string
		req  domain.EditRequest
		want domain.Book
	}{
		{
			name: "nothing changes",
			req:  domain.EditRequest{},
			want: orig,
		},
		{
			name: "title only",
			req:  domain.EditRequest{Title: "Dune (1965)"},
			want: domain.Book{Title: "Dune (1965)", Author: "Frank Herbert", Year: 1965, Genre: "Sci-Fi"},
		},
		{
			name: "author only",
			req:  domain.EditRequest{Author: "F. Herbert"},
			want: domain.Book{Title: "Dune", Author: "F. Herbert", Year: 1965, Genre: "Sci-Fi"},
		},
		{
			name: "year only",
			req:  domain.EditRequest{Year: "1966"},
			want: domain.Book{Title: "Dune", Author: "Frank Herbert", Year: 1966, Genre: "Sci-Fi"},
		},
		{
			name: "genre only",
			req:  domain.EditRequest{Genre: "Classic"},
			want: domain.Book{Title: "Dune", Author: "Frank Herbert", Year: 1965, Genre: "Classic"},
		},
		{
			name: "read only",
			req:  domain.EditRequest{Read: "yes"},
			want: domain.Book{Title: "Dune", Author: "Frank Herbert", Year: 1965, Genre: "Sci-Fi", Read: true},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc, ms := newService(t, orig)

			got, err := svc.Edit("DUNE", tc.req)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, []domain.Book{tc.want}, svc.Books())
			assert.Equal(t, 1, ms.saves)
		})
	}
}

// Edit ignores years add would reject and years add would accept alike,
// as long as they are not plain digits.
func TestEdit_YearAndReadAreLenient(t *testing.T) {
	orig := domain.Book{Title: "Dune", Author: "Frank Herbert", Year: 1965, Read: true}

	tests := []struct {
		name string
		req  domain.EditRequest
	}{
		{name: "non numeric year ignored", req: domain.EditRequest{Year: "abc"}},
		{name: "negative year ignored", req: domain.EditRequest{Year: "-700"}},
		{name: "overflow year ignored", req: domain.EditRequest{Year: "99999999999999999999999"}},
		{name: "read maybe ignored", req: domain.EditRequest{Read: "maybe"}},
		{name: "read uppercase ignored", req: domain.EditRequest{Read: "NO"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc, _ := newService(t, orig)

			got, err := svc.Edit("dune", tc.req)
			require.NoError(t, err)
			assert.Equal(t, orig, got)
		})
	}
}

func TestEdit_FirstMatchWinsAndKeepsSlot(t *testing.T) {
	svc, _ := newService(t,
		domain.Book{Title: "Emma", Author: "Jane Austen", Year: 1815},
		domain.Book{Title: "Dune", Author: "A", Year: 1},
		domain.Book{Title: "DUNE", Author: "B", Year: 2},
	)

	_, err := svc.Edit("dune", domain.EditRequest{Genre: "Sci-Fi"})
	require.NoError(t, err)

	books := svc.Books()
	assert.Equal(t, "Sci-Fi", books[1].Genre)
	assert.Equal(t, "", books[2].Genre)
	assert.Equal(t, "Emma", books[0].Title)
}

// Edits can rename a book onto an existing title; only Add enforces uniqueness.
func TestEdit_AllowsDuplicateTitle(t *testing.T) {
	svc, _ := newService(t,
		domain.Book{Title: "Dune", Author: "Frank Herbert", Year: 1965},
		domain.Book{Title: "Emma", Author: "Jane Austen", Year: 1815},
	)

	_, err := svc.Edit("emma", domain.EditRequest{Title: "dune"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Dune", "dune"}, svc.Titles())
}

func TestRemove(t *testing.T) {
	svc, ms := newService(t,
		domain.Book{Title: "Dune", Author: "Frank Herbert", Year: 1965},
		domain.Book{Title: "Emma", Author: "Jane Austen", Year: 1815},
		domain.Book{Title: "Ulysses", Author: "James Joyce", Year: 1922},
	)

	removed, err := svc.Remove("EMMA")
	require.NoError(t, err)
	assert.Equal(t, "Emma", removed.Title)
	assert.Equal(t, []string{"Dune", "Ulysses"}, svc.Titles())
	assert.Equal(t, 1, ms.saves)
	assert.Len(t, ms.books, 2)

	_, err = svc.Remove("Emma")
	assert.ErrorIs(t, err, domain.ErrBookNotFound)
	assert.Equal(t, 2, svc.Len())
	assert.Equal(t, 1, ms.saves)
}

func TestSearch(t *testing.T) {
	svc, _ := newService(t,
		domain.Book{Title: "Dune", Author: "Frank Herbert", Year: 1965},
		domain.Book{Title: "Emma", Author: "Jane Austen", Year: 1815},
		domain.Book{Title: "Dune Messiah", Author: "Frank Herbert", Year: 1969},
	)

	tests := []struct {
		name    string
		mode    domain.SearchMode
		keyword string
		want    []string
		err     error
	}{
		{name: "title exact any case", mode: domain.SearchByTitle, keyword: "dUNE", want: []string{"Dune"}},
		{name: "title is not substring", mode: domain.SearchByTitle, keyword: "Dun", err: domain.ErrNoMatches},
		{name: "author in library order", mode: domain.SearchByAuthor, keyword: "frank herbert", want: []string{"Dune", "Dune Messiah"}},
		{name: "author is not substring", mode: domain.SearchByAuthor, keyword: "Herbert", err: domain.ErrNoMatches},
		{name: "fuzzy title", mode: domain.SearchFuzzy, keyword: "messiah", want: []string{"Dune Messiah"}},
		{name: "fuzzy none", mode: domain.SearchFuzzy, keyword: "xyz", err: domain.ErrNoMatches},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := svc.Search(tc.mode, tc.keyword)
			if tc.err != nil {
				assert.ErrorIs(t, err, tc.err)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			var titles []string
			for _, b := range got {
				titles = append(titles, b.Title)
			}
			assert.Equal(t, tc.want, titles)
		})
	}

	_, err := svc.Search(domain.SearchMode(42), "x")
	assert.Error(t, err)
}

func TestList_Empty(t *testing.T) {
	svc, _ := newService(t)

	books, err := svc.List()
	assert.ErrorIs(t, err, domain.ErrLibraryEmpty)
	assert.Nil(t, books)
}

func TestStatistics(t *testing.T) {
	tests := []struct {
		name  string
		books []domain.Book
		want  domain.Stats
	}{
		{name: "empty", want: domain.Stats{}},
		{
			name:  "one unread",
			books: []domain.Book{{Title: "Dune"}},
			want:  domain.Stats{Total: 1, Read: 0, PercentRead: 0},
		},
		{
			name:  "one of three read",
			books: []domain.Book{{Title: "a", Read: true}, {Title: "b"}, {Title: "c"}},
			want:  domain.Stats{Total: 3, Read: 1, PercentRead: 33.33},
		},
		{
			name:  "two of three read",
			books: []domain.Book{{Title: "a", Read: true}, {Title: "b", Read: true}, {Title: "c"}},
			want:  domain.Stats{Total: 3, Read: 2, PercentRead: 66.67},
		},
		{
			name:  "all read",
			books: []domain.Book{{Title: "a", Read: true}, {Title: "b", Read: true}},
			want:  domain.Stats{Total: 2, Read: 2, PercentRead: 100},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc, _ := newService(t, tc.books...)
			assert.Equal(t, tc.want, svc.Statistics())
		})
	}
}

func TestLoad_FailureStartsEmpty(t *testing.T) {
	ms := &memStore{books: []domain.Book{{Title: "Dune"}}}
	svc := NewService(ms, nil)
	require.NoError(t, svc.Load())
	require.Equal(t, 1, svc.Len())

	ms.loadErr = errors.Join(domain.ErrLoadFailed, errors.New("permission denied"))
	err := svc.Load()
	assert.ErrorIs(t, err, domain.ErrLoadFailed)
	assert.Equal(t, 0, svc.Len())
}

func TestSuggest(t *testing.T) {
	svc, _ := newService(t,
		domain.Book{Title: "Dune", Author: "Frank Herbert", Year: 1965},
		domain.Book{Title: "Emma", Author: "Jane Austen", Year: 1815},
	)

	assert.Equal(t, []string{"Dune"}, svc.Suggest("dun", 3))
	assert.Nil(t, svc.Suggest("dun", 0))
}

func TestFind(t *testing.T) {
	svc, _ := newService(t, domain.Book{Title: "Dune", Author: "Frank Herbert", Year: 1965})

	b, err := svc.Find("DUNE")
	require.NoError(t, err)
	assert.Equal(t, "Frank Herbert", b.Author)

	_, err = svc.Find("Emma")
	assert.ErrorIs(t, err, domain.ErrBookNotFound)
	assert.True(t, svc.Exists("dune"))
	assert.False(t, svc.Exists("emma"))
}

func TestRoundTripThroughTextFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "library.txt")

	svc := NewService(store.NewTextFile(path, nil), nil)
	require.NoError(t, svc.Load())
	_, err := svc.Add(dune())
	require.NoError(t, err)
	_, err = svc.Add(domain.AddRequest{Title: "The Odyssey", Author: "Homer", Year: "-700", Genre: "Epic", Read: true})
	require.NoError(t, err)

	reloaded := NewService(store.NewTextFile(path, nil), nil)
	require.NoError(t, reloaded.Load())
	assert.Equal(t, svc.Books(), reloaded.Books())
}
