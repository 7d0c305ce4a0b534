package repository

import (
	"errors"
	"regexp"
	"testing"
	"time"

	"microwave/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
)

var programColumnNames = []string{"id", "name", "food", "power_level", "time_in_seconds", "display_char", "instructions", "created_at"}

func TestProgramSQLite_Create(t *testing.T) {
	t.Parallel()

	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	tests := []struct {
		name    string
		in      models.CustomProgram
		expect  func(m sqlmock.Sqlmock)
		wantErr bool
	}{
		{
			name: "generates id and timestamp",
			in:   models.CustomProgram{Name: "Pizza Fria", Food: "Pizza", PowerLevel: 6, TimeInSeconds: 90, Character: "P"},
			expect: func(m sqlmock.Sqlmock) {
				m.ExpectExec(regexp.QuoteMeta(insertProgramSQL)).
					WithArgs(sqlmock.AnyArg(), "Pizza Fria", "pizza fria", "Pizza", 6, 90, "P", "", sqlmock.AnyArg()).
					WillReturnResult(sqlmock.NewResult(1, 1))
			},
		},
		{
			name: "keeps given id",
			in:   models.CustomProgram{ID: "fixed", Name: "Sopa", Food: "Sopa", PowerLevel: 5, TimeInSeconds: 300, Character: "S", Instructions: "mexer", CreatedAt: created},
			expect: func(m sqlmock.Sqlmock) {
				m.ExpectExec(regexp.QuoteMeta(insertProgramSQL)).
					WithArgs("fixed", "Sopa", "sopa", "Sopa", 5, 300, "S", "mexer", created).
					WillReturnResult(sqlmock.NewResult(1, 1))
			},
		},
		{
			name: "exec error",
			in:   models.CustomProgram{Name: "Bolo", Food: "Bolo", PowerLevel: 3, TimeInSeconds: 60, Character: "B"},
			expect: func(m sqlmock.Sqlmock) {
				m.ExpectExec("INSERT INTO custom_programs").WillReturnError(errors.New("disk full"))
			},
			wantErr: true,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			db, mock := newMockDB(t)
			repo := NewProgramSQLite(db)
			tc.expect(mock)

			got, err := repo.Create(testCtx(t), tc.in)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Create: %v", err)
			}
			if got.ID == "" || got.CreatedAt.IsZero() {
				t.Fatalf("id/created_at not set: %+v", got)
			}
			if tc.in.ID != "" && got.ID != tc.in.ID {
				t.Fatalf("id changed: %q", got.ID)
			}
		})
	}
}

func TestProgramSQLite_UpdateNotFound(t *testing.T) {
	t.Parallel()
	db, mock := newMockDB(t)
	repo := NewProgramSQLite(db)

	mock.ExpectExec(regexp.QuoteMeta(updateProgramSQL)).
		WithArgs("Novo", "novo", "Arroz", 4, 100, "A", "", "missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	_, err := repo.Update(testCtx(t), models.CustomProgram{ID: "missing", Name: "Novo", Food: "Arroz", PowerLevel: 4, TimeInSeconds: 100, Character: "A"})
	if !errors.Is(err, ErrProgramNotFound) {
		t.Fatalf("expected ErrProgramNotFound, got %v", err)
	}
}

func TestProgramSQLite_Delete(t *testing.T) {
	t.Parallel()
	db, mock := newMockDB(t)
	repo := NewProgramSQLite(db)

	mock.ExpectExec(regexp.QuoteMeta(deleteProgramSQL)).WithArgs("a").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(deleteProgramSQL)).WithArgs("b").WillReturnResult(sqlmock.NewResult(0, 0))

	ok, err := repo.Delete(testCtx(t), "a")
	if err != nil || !ok {
		t.Fatalf("Delete(a) = %v, %v", ok, err)
	}
	ok, err = repo.Delete(testCtx(t), "b")
	if err != nil || ok {
		t.Fatalf("Delete(b) = %v, %v", ok, err)
	}
}

func TestProgramSQLite_GetAllAndByID(t *testing.T) {
	t.Parallel()
	db, mock := newMockDB(t)
	repo := NewProgramSQLite(db)

	created := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta(selectProgramsSQL)).
		WillReturnRows(sqlmock.NewRows(programColumnNames).
			AddRow("1", "Pizza", "Pizza", 6, 90, "P", "", created).
			AddRow("2", "Sopa", "Sopa", 5, 300, "S", "mexer", created.Add(time.Minute)))
	mock.ExpectQuery(regexp.QuoteMeta(selectProgramByIDSQL)).
		WithArgs("nope").
		WillReturnRows(sqlmock.NewRows(programColumnNames))

	all, err := repo.GetAll(testCtx(t))
	if err != nil {
		t.Fatalf("GetAll: %v", err)
	}
	if len(all) != 2 || all[0].ID != "1" || all[1].Instructions != "mexer" || all[1].TimeInSeconds != 300 {
		t.Fatalf("unexpected programs: %+v", all)
	}

	p, err := repo.GetByID(testCtx(t), "nope")
	if err != nil || p != nil {
		t.Fatalf("GetByID(nope) = %+v, %v", p, err)
	}
}

func TestProgramSQLite_ExistsAndCount(t *testing.T) {
	t.Parallel()
	db, mock := newMockDB(t)
	repo := NewProgramSQLite(db)

	mock.ExpectQuery(regexp.QuoteMeta(countProgramCharSQL)).
		WithArgs("P", "self").
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(0))
	mock.ExpectQuery(regexp.QuoteMeta(countProgramNameSQL)).
		WithArgs("pizza", "").
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta(countProgramsSQL)).
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(3))

	if ok, err := repo.ExistsCharacter(testCtx(t), "P", "self"); err != nil || ok {
		t.Fatalf("ExistsCharacter = %v, %v", ok, err)
	}
	if ok, err := repo.ExistsName(testCtx(t), "  PIZZA ", ""); err != nil || !ok {
		t.Fatalf("ExistsName = %v, %v", ok, err)
	}
	if n, err := repo.Count(testCtx(t)); err != nil || n != 3 {
		t.Fatalf("Count = %d, %v", n, err)
	}
}
