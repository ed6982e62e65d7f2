package clientrepo

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"signdesk/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, *repository) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "postgres")
	repo := NewRepository(sqlxDB)
	return sqlxDB, mock, repo
}

func TestCreateClient_Success(t *testing.T) {
	t.Parallel()

	db, mock, repo := setup(t)
	defer db.Close()

	company := "ACME"
	client := &models.Client{
		ID:        "client1",
		Name:      "Alice",
		Email:     "alice@example.com",
		Company:   &company,
		CreatedAt: time.Now(),
	}

	mock.ExpectExec(regexp.QuoteMeta(`
		INSERT INTO clients (id, name, email, company, created_at)
		VALUES ($1, $2, $3, $4, $5)`)).
		WithArgs(client.ID, client.Name, client.Email, client.Company, client.CreatedAt).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.CreateClient(context.Background(), client)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClientByID_Success(t *testing.T) {
	t.Parallel()

	db, mock, repo := setup(t)
	defer db.Close()

	createdAt := time.Now()

	rows := sqlmock.NewRows([]string{"id", "name", "email", "company", "created_at"}).
		AddRow("client1", "Alice", "alice@example.com", nil, createdAt)

	mock.ExpectQuery(`SELECT(.|\s)+FROM clients c\s+WHERE c\.id = \$1`).
		WithArgs("client1").
		WillReturnRows(rows)

	client, err := repo.ClientByID(context.Background(), "client1")
	require.NoError(t, err)

	assert.Equal(t, "client1", client.ID)
	assert.Nil(t, client.Company)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClientByID_NotFound(t *testing.T) {
	t.Parallel()

	db, mock, repo := setup(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT(.|\s)+FROM clients c\s+WHERE c\.id = \$1`).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.ClientByID(context.Background(), "missing")
	assert.ErrorIs(t, err, models.ErrClientNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListClients_Success(t *testing.T) {
	t.Parallel()

	db, mock, repo := setup(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "name", "email", "company", "created_at"}).
		AddRow("client2", "Bob", "bob@example.com", nil, time.Now()).
		AddRow("client1", "Alice", "alice@example.com", nil, time.Now().Add(-time.Hour))

	mock.ExpectQuery(`SELECT(.|\s)+FROM clients c\s+ORDER BY c\.created_at DESC`).
		WillReturnRows(rows)

	clients, err := repo.ListClients(context.Background())
	require.NoError(t, err)

	require.Len(t, clients, 2)
	assert.Equal(t, "client2", clients[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListClients_QueryError(t *testing.T) {
	t.Parallel()

	db, mock, repo := setup(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT(.|\s)+FROM clients c`).
		WillReturnError(errors.New("db failure"))

	_, err := repo.ListClients(context.Background())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "ListClients")
	assert.NoError(t, mock.ExpectationsWereMet())
}
