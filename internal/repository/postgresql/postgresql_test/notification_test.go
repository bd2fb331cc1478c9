package postgresql_test

import (
	"context"
	"testing"
	"time"

	"github.com/audyningrum27/simtrendi/internal/domain/notification"
	"github.com/audyningrum27/simtrendi/internal/repository/postgresql"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationRepository_CreateListMarkAsRead(t *testing.T) {
	setup := NewTestDatabase(t)
	repo := postgresql.NewNotificationRepository(setup.DB)
	ctx := context.Background()

	first := &notification.Notification{
		EmployeeID: "E", Message: "pertama", Audience: notification.AudienceEmployee,
		Category: notification.CategoryLeave, CreatedAt: time.Now().Add(-time.Minute),
	}
	require.NoError(t, repo.Create(ctx, first))
	assert.NotEmpty(t, first.ID)

	require.NoError(t, repo.CreateBatch(ctx, []*notification.Notification{
		{EmployeeID: "E", Message: "kedua", Audience: notification.AudienceEmployee, Category: notification.CategoryLeave},
		{EmployeeID: "E", Message: "admin", Audience: notification.AudienceAdmin, Category: notification.CategoryLeave},
		{EmployeeID: "F", Message: "pelatihan", Audience: notification.AudienceAdmin, Category: notification.CategoryTraining},
	}))

	employeeID := "E"
	mine, err := repo.List(ctx, notification.ListNotificationsRequest{EmployeeID: &employeeID, Audience: notification.AudienceEmployee})
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, "kedua", mine[0].Message)
	assert.Equal(t, "pertama", mine[1].Message)

	category := notification.CategoryTraining
	admin, err := repo.List(ctx, notification.ListNotificationsRequest{Audience: notification.AudienceAdmin, Category: &category})
	require.NoError(t, err)
	require.Len(t, admin, 1)
	assert.Equal(t, "F", admin[0].EmployeeID)

	require.NoError(t, repo.MarkAsRead(ctx, first.ID))
	assert.ErrorIs(t, repo.MarkAsRead(ctx, uuid.Must(uuid.NewV7()).String()), notification.ErrNotificationNotFound)
}
