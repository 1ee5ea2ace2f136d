package repository_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/okian/scribe/internal/adapters/repository"
	"github.com/okian/scribe/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func openStores(t *testing.T) map[string]repository.Store {
	t.Helper()

	sqlite, err := repository.OpenSQLite(filepath.Join(t.TempDir(), "scribe.db"))
	if err != nil {
		t.Fatalf("opening sqlite store: %v", err)
	}
	t.Cleanup(func() { _ = sqlite.Close() })

	return map[string]repository.Store{
		"memory": repository.NewMemoryStore(),
		"sqlite": sqlite,
	}
}

func TestStore(t *testing.T) {
	for name, store := range openStores(t) {
		Convey("Given an empty "+name+" store", t, func() {
			ctx := context.Background()

			Convey("When nothing has been committed", func() {
				texts, err := store.AcceptedTexts(ctx, "a1")
				So(err, ShouldBeNil)
				So(texts, ShouldBeEmpty)

				count, err := store.AcceptedCount(ctx, "a1")
				So(err, ShouldBeNil)
				So(count, ShouldEqual, 0)

				ref, err := store.ReferenceText(ctx, "a1")
				So(err, ShouldBeNil)
				So(ref, ShouldBeEmpty)
			})

			Convey("When submissions are committed for two assignments", func() {
				base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
				subs := []model.Submission{
					{ID: "u1", AssignmentID: "a1", StudentID: "s1", Text: "first essay", SubmittedAt: base},
					{ID: "u2", AssignmentID: "a1", StudentID: "s2", Text: "second essay", SubmittedAt: base.Add(time.Minute)},
					{ID: "u3", AssignmentID: "a2", StudentID: "s1", Text: "other assignment", SubmittedAt: base},
				}
				for _, sub := range subs {
					So(store.CommitAccepted(ctx, sub), ShouldBeNil)
				}

				Convey("Then texts come back per assignment, oldest first", func() {
					texts, err := store.AcceptedTexts(ctx, "a1")
					So(err, ShouldBeNil)
					So(texts, ShouldResemble, []string{"first essay", "second essay"})

					count, err := store.AcceptedCount(ctx, "a1")
					So(err, ShouldBeNil)
					So(count, ShouldEqual, 2)

					other, err := store.AcceptedTexts(ctx, "a2")
					So(err, ShouldBeNil)
					So(other, ShouldResemble, []string{"other assignment"})
				})
			})

			Convey("When a reference text is set and replaced", func() {
				So(store.SetReference(ctx, "a3", "model answer v1"), ShouldBeNil)
				So(store.SetReference(ctx, "a3", "model answer v2"), ShouldBeNil)

				Convey("Then the latest text wins", func() {
					ref, err := store.ReferenceText(ctx, "a3")
					So(err, ShouldBeNil)
					So(ref, ShouldEqual, "model answer v2")
				})
			})

			Convey("When attempts are recorded", func() {
				base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
				attempts := []model.Attempt{
					{
						ID: "t1", AssignmentID: "a4", StudentID: "s1",
						Status: model.StatusAccepted, LexicalMax: 0.1,
						SemanticScore: 0.8, TS: base,
					},
					{
						ID: "t2", AssignmentID: "a4", StudentID: "s2",
						Status: model.StatusRejected, Reason: model.ReasonPlagiarism,
						LexicalMax: 0.93, TS: base.Add(time.Second),
					},
				}
				for _, a := range attempts {
					So(store.RecordAttempt(ctx, a), ShouldBeNil)
				}

				Convey("Then the audit trail reads back in order", func() {
					got, err := store.ListAttempts(ctx, "a4")
					So(err, ShouldBeNil)
					So(got, ShouldHaveLength, 2)
					So(got[0].ID, ShouldEqual, "t1")
					So(got[0].Status, ShouldEqual, model.StatusAccepted)
					So(got[1].ID, ShouldEqual, "t2")
					So(got[1].Reason, ShouldEqual, model.ReasonPlagiarism)
					So(got[1].LexicalMax, ShouldAlmostEqual, 0.93, 1e-9)
				})
			})
		})
	}
}

func TestSQLiteStore_Reopen(t *testing.T) {
	Convey("Given a sqlite store with committed data", t, func() {
		ctx := context.Background()
		path := filepath.Join(t.TempDir(), "scribe.db")

		store, err := repository.OpenSQLite(path)
		So(err, ShouldBeNil)

		sub := model.Submission{
			ID: "u1", AssignmentID: "a1", StudentID: "s1",
			Text: "persisted essay", SubmittedAt: time.Now().UTC(),
		}
		So(store.CommitAccepted(ctx, sub), ShouldBeNil)
		So(store.Close(), ShouldBeNil)

		Convey("When the database file is reopened", func() {
			reopened, err := repository.OpenSQLite(path)
			So(err, ShouldBeNil)
			defer reopened.Close()

			Convey("Then the corpus survives", func() {
				texts, err := reopened.AcceptedTexts(ctx, "a1")
				So(err, ShouldBeNil)
				So(texts, ShouldResemble, []string{"persisted essay"})
			})
		})
	})
}
