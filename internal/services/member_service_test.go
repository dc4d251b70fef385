package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/team-dashboard/internal/database"
	"github.com/yukikurage/team-dashboard/internal/models"
	"github.com/yukikurage/team-dashboard/internal/repository"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupMemberService(t *testing.T) *MemberService {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	require.NoError(t, database.Seed(db, zap.NewNop()))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return NewMemberService(repository.NewMemberRepository(db))
}

func TestMemberService_UpdateMember(t *testing.T) {
	svc := setupMemberService(t)

	nick := "@andrii"
	member, err := svc.UpdateMember("2", models.MemberUpdate{TelegramNickname: &nick})
	require.NoError(t, err)
	assert.Equal(t, "@andrii", member.TelegramNickname)
	assert.Equal(t, "Andrii Shevchenko", member.Name)

	members, err := svc.ListMembers()
	require.NoError(t, err)
	for _, m := range members {
		if m.ID == "2" {
			assert.Equal(t, "@andrii", m.TelegramNickname)
		}
	}
}

func TestMemberService_UpdateMember_Errors(t *testing.T) {
	svc := setupMemberService(t)

	_, err := svc.UpdateMember("", models.MemberUpdate{})
	assert.ErrorIs(t, err, ErrMemberIDRequired)

	_, err = svc.UpdateMember("missing", models.MemberUpdate{})
	assert.ErrorIs(t, err, ErrMemberNotFound)
}
