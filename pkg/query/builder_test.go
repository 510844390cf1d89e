package query_test

import (
	"testing"

	"github.com/JaimeStill/live-gallery/pkg/query"
)

func testProjection() *query.ProjectionMap {
	return query.NewProjectionMap("public", "items", "i").
		Project("id", "Id").
		Project("title", "Title").
		Project("created_at", "CreatedAt")
}

func testSort() query.SortField {
	return query.SortField{Field: "CreatedAt", Descending: true}
}

func TestBuildSingle(t *testing.T) {
	sql, args := query.
		NewBuilder(testProjection(), testSort()).
		BuildSingle("Id", "abc")

	expected := "SELECT i.id, i.title, i.created_at FROM public.items i WHERE i.id = $1"
	if sql != expected {
		t.Errorf("Expected %q, got %q", expected, sql)
	}
	if len(args) != 1 || args[0] != "abc" {
		t.Errorf("Expected args [abc], got %v", args)
	}
}

func TestBuildCount_NoConditions(t *testing.T) {
	sql, args := query.
		NewBuilder(testProjection(), testSort()).
		BuildCount()

	expected := "SELECT COUNT(*) FROM public.items i"
	if sql != expected {
		t.Errorf("Expected %q, got %q", expected, sql)
	}
	if len(args) != 0 {
		t.Errorf("Expected no args, got %v", args)
	}
}

func TestBuildPage_DefaultSort(t *testing.T) {
	sql, _ := query.
		NewBuilder(testProjection(), testSort()).
		BuildPage(2, 10)

	expected := "SELECT i.id, i.title, i.created_at FROM public.items i ORDER BY i.created_at DESC LIMIT 10 OFFSET 10"
	if sql != expected {
		t.Errorf("Expected %q, got %q", expected, sql)
	}
}

func TestWhereSearch(t *testing.T) {
	search := "sunset"

	sql, args := query.
		NewBuilder(testProjection(), testSort()).
		WhereSearch(&search, "Title", "Id").
		BuildCount()

	expected := "SELECT COUNT(*) FROM public.items i WHERE (i.title ILIKE $1 OR i.id ILIKE $2)"
	if sql != expected {
		t.Errorf("Expected %q, got %q", expected, sql)
	}

	if len(args) != 2 {
		t.Fatalf("Expected 2 args, got %d", len(args))
	}
	for i, arg := range args {
		if arg != "%sunset%" {
			t.Errorf("Arg %d: expected %q, got %v", i, "%sunset%", arg)
		}
	}
}

func TestWhereSearch_NilIgnored(t *testing.T) {
	sql, args := query.
		NewBuilder(testProjection(), testSort()).
		WhereSearch(nil, "Title").
		BuildCount()

	expected := "SELECT COUNT(*) FROM public.items i"
	if sql != expected {
		t.Errorf("Expected %q, got %q", expected, sql)
	}
	if len(args) != 0 {
		t.Errorf("Expected no args, got %v", args)
	}
}

func TestWhereEquals_ParameterNumbering(t *testing.T) {
	search := "beach"

	sql, args := query.
		NewBuilder(testProjection(), testSort()).
		WhereEquals("Id", "abc").
		WhereSearch(&search, "Title").
		BuildCount()

	expected := "SELECT COUNT(*) FROM public.items i WHERE i.id = $1 AND (i.title ILIKE $2)"
	if sql != expected {
		t.Errorf("Expected %q, got %q", expected, sql)
	}
	if len(args) != 2 {
		t.Errorf("Expected 2 args, got %d", len(args))
	}
}

func TestJoin(t *testing.T) {
	projection := query.NewProjectionMap("public", "items", "i").
		Project("id", "Id").
		ProjectAs("u.username", "OwnerUsername")

	sql, _ := query.
		NewBuilder(projection, query.SortField{Field: "Id"}).
		Join("JOIN public.users u ON u.id = i.owner_id").
		BuildPage(1, 5)

	expected := "SELECT i.id, u.username FROM public.items i JOIN public.users u ON u.id = i.owner_id ORDER BY i.id ASC LIMIT 5 OFFSET 0"
	if sql != expected {
		t.Errorf("Expected %q, got %q", expected, sql)
	}
}

func TestOrderBy_Override(t *testing.T) {
	sql, _ := query.
		NewBuilder(testProjection(), testSort()).
		OrderBy("Title", false).
		BuildPage(1, 10)

	expected := "SELECT i.id, i.title, i.created_at FROM public.items i ORDER BY i.title ASC LIMIT 10 OFFSET 0"
	if sql != expected {
		t.Errorf("Expected %q, got %q", expected, sql)
	}
}
