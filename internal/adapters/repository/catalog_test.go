package repository_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/okian/boruto/internal/adapters/repository"
	"github.com/okian/boruto/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestCatalog_Page(t *testing.T) {
	Convey("Given the default catalog", t, func() {
		ctx := context.Background()
		c, err := repository.NewDefault(ctx)
		So(err, ShouldBeNil)

		Convey("Then it holds 25 heroes on 5 pages of 5", func() {
			So(c.Count(), ShouldEqual, 25)
			So(c.PageCount(), ShouldEqual, 5)
			So(c.PageSize(), ShouldEqual, 5)
		})

		Convey("When requesting every valid page", func() {
			for n := 1; n <= 5; n++ {
				page, err := c.Page(ctx, n)

				So(err, ShouldBeNil)
				So(page.Number, ShouldEqual, n)
				So(page.Heroes, ShouldHaveLength, 5)
				So(page.HasPrev, ShouldEqual, n > 1)
				So(page.HasNext, ShouldEqual, n < 5)
			}
		})

		Convey("When requesting pages outside the range", func() {
			for _, n := range []int{0, 6, -1, 100} {
				_, err := c.Page(ctx, n)

				So(errors.Is(err, repository.ErrPageNotFound), ShouldBeTrue)
			}
		})

		Convey("When concatenating all pages", func() {
			var union []model.Hero
			for n := 1; n <= 5; n++ {
				page, err := c.Page(ctx, n)
				So(err, ShouldBeNil)
				union = append(union, page.Heroes...)
			}

			Convey("Then it equals the full catalog without duplicates", func() {
				So(union, ShouldResemble, c.All(ctx))
				ids := make(map[int]bool)
				for _, h := range union {
					So(ids[h.ID], ShouldBeFalse)
					ids[h.ID] = true
				}
				So(ids, ShouldHaveLength, 25)
			})
		})

		Convey("When a caller mutates a returned page", func() {
			page, _ := c.Page(ctx, 1)
			page.Heroes[0].Name = "mutated"
			page.Heroes[0].Family[0] = "mutated"

			Convey("Then the catalog is unchanged", func() {
				again, _ := c.Page(ctx, 1)
				So(again.Heroes[0].Name, ShouldEqual, "Sasuke")
				So(again.Heroes[0].Family[0], ShouldNotEqual, "mutated")
			})
		})
	})
}

func TestCatalog_Search(t *testing.T) {
	Convey("Given the default catalog", t, func() {
		ctx := context.Background()
		c, err := repository.NewDefault(ctx)
		So(err, ShouldBeNil)

		Convey("When searching a unique substring", func() {
			res := c.Search(ctx, "sas")

			Convey("Then exactly one hero matches", func() {
				So(res, ShouldHaveLength, 1)
				So(res[0].Name, ShouldEqual, "Sasuke")
			})
		})

		Convey("When searching a shared substring", func() {
			res := c.Search(ctx, "sa")

			Convey("Then three heroes match in catalog order", func() {
				So(res, ShouldHaveLength, 3)
				So(res[0].Name, ShouldEqual, "Sasuke")
				So(res[1].Name, ShouldEqual, "Sakura")
				So(res[2].Name, ShouldEqual, "Sarada")
			})
		})

		Convey("When searching with different case", func() {
			So(c.Search(ctx, "SAS"), ShouldHaveLength, 1)
			So(c.Search(ctx, "nArUtO"), ShouldHaveLength, 1)
		})

		Convey("When searching an empty string", func() {
			res := c.Search(ctx, "")

			Convey("Then the result is empty, not nil", func() {
				So(res, ShouldNotBeNil)
				So(res, ShouldBeEmpty)
			})
		})

		Convey("When searching an unknown name", func() {
			So(c.Search(ctx, "unknown"), ShouldBeEmpty)
		})

		Convey("When searching concurrently", func() {
			var wg sync.WaitGroup
			counts := make([]int, 32)
			for i := range counts {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					counts[i] = len(c.Search(ctx, "sa"))
				}(i)
			}
			wg.Wait()

			for _, n := range counts {
				So(n, ShouldEqual, 3)
			}
		})
	})
}

func TestCatalog_New(t *testing.T) {
	Convey("Given a custom hero list", t, func() {
		ctx := context.Background()
		heroes := make([]model.Hero, 6)
		for i := range heroes {
			heroes[i] = model.Hero{ID: i + 1, Name: fmt.Sprintf("hero-%d", i+1)}
		}

		Convey("When it fits the configured shape", func() {
			c, err := repository.New(ctx, heroes, repository.WithPageSize(2), repository.WithPageCount(3))

			So(err, ShouldBeNil)
			page, err := c.Page(ctx, 3)
			So(err, ShouldBeNil)
			So(page.Heroes, ShouldHaveLength, 2)
			So(page.HasNext, ShouldBeFalse)
			So(page.Heroes[0].Name, ShouldEqual, "hero-5")
		})

		Convey("When it does not fill the pages exactly", func() {
			_, err := repository.New(ctx, heroes)

			So(errors.Is(err, repository.ErrInvalidCatalog), ShouldBeTrue)
		})

		Convey("When two heroes share an id", func() {
			heroes[1].ID = heroes[0].ID
			_, err := repository.New(ctx, heroes, repository.WithPageSize(3), repository.WithPageCount(2))

			So(errors.Is(err, repository.ErrInvalidCatalog), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, "duplicate hero id")
		})

		Convey("When a hero has no name", func() {
			heroes[4].Name = "  "
			_, err := repository.New(ctx, heroes, repository.WithPageSize(3), repository.WithPageCount(2))

			So(errors.Is(err, repository.ErrInvalidCatalog), ShouldBeTrue)
		})
	})

	Convey("Given malformed YAML", t, func() {
		_, err := repository.Decode([]byte("- id: [unclosed"))

		So(errors.Is(err, repository.ErrInvalidCatalog), ShouldBeTrue)
	})
}
