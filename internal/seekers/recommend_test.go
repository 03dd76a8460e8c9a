package seekers

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/vinaykumarh26/careerport-core/internal/jobs"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&jobs.Posting{}, &jobs.Skill{}, &Profile{}))
	return db
}

func seedPosting(t *testing.T, db *gorm.DB, title string, minScore int, skills ...string) jobs.Posting {
	t.Helper()
	p := jobs.Posting{CompanyID: 1, Title: title, MinAptitudeScore: minScore}
	require.NoError(t, db.Create(&p).Error)
	for _, s := range skills {
		require.NoError(t, db.Create(&jobs.Skill{PostingID: p.ID, Skill: s}).Error)
	}
	return p
}

func TestRecommendSkillOverlapAndThreshold(t *testing.T) {
	db := openTestDB(t)

	included := seedPosting(t, db, "Backend Engineer", 50, "Python", "Go", "Rust")
	seedPosting(t, db, "Too Demanding", 80, "Python", "Go", "Rust")
	seedPosting(t, db, "Too Little Overlap", 40, "Rust", "C++")

	recs, err := Recommend(db, 70, []string{"SQL", "Python", "Go"})
	require.NoError(t, err)
	require.Len(t, recs, 1)
	require.Equal(t, included.ID, recs[0].ID)
	require.Equal(t, 2, recs[0].MatchedSkills)
}

func TestRecommendRanking(t *testing.T) {
	db := openTestDB(t)

	two := seedPosting(t, db, "Two Matches", 10, "Go", "SQL")
	three := seedPosting(t, db, "Three Matches", 0, "Go", "SQL", "Python")
	twoHigher := seedPosting(t, db, "Two Matches Higher Bar", 60, "Python", "SQL")

	recs, err := Recommend(db, 100, []string{"Go", "SQL", "Python"})
	require.NoError(t, err)
	require.Len(t, recs, 3)

	// match count descending, ties broken by minimum aptitude descending
	require.Equal(t, three.ID, recs[0].ID)
	require.Equal(t, twoHigher.ID, recs[1].ID)
	require.Equal(t, two.ID, recs[2].ID)
}

func TestRecommendNoSkillsFallback(t *testing.T) {
	db := openTestDB(t)

	for i := 0; i < 12; i++ {
		seedPosting(t, db, "Job", i*5, "Go", "SQL")
	}

	recs, err := Recommend(db, 100, nil)
	require.NoError(t, err)
	require.Len(t, recs, 10, "capped at 10")

	prev := 101
	for _, r := range recs {
		require.Equal(t, 0, r.MatchedSkills, "no overlap filter, match count pinned to zero")
		require.LessOrEqual(t, r.MinAptitudeScore, prev, "ordered by minimum aptitude descending")
		prev = r.MinAptitudeScore
	}
}

func TestRecommendAptitudeGate(t *testing.T) {
	db := openTestDB(t)

	seedPosting(t, db, "Out Of Reach", 60, "Go", "SQL")

	recs, err := Recommend(db, 40, []string{"Go", "SQL"})
	require.NoError(t, err)
	require.Empty(t, recs, "empty result is not an error")
}

func TestRecommendExcludesExpired(t *testing.T) {
	db := openTestDB(t)

	open := seedPosting(t, db, "Open", 0, "Go", "SQL")
	expired := seedPosting(t, db, "Expired", 0, "Go", "SQL")
	past := time.Now().Add(-24 * time.Hour)
	require.NoError(t, db.Model(&jobs.Posting{}).Where("id = ?", expired.ID).Update("expires_at", past).Error)

	recs, err := Recommend(db, 50, []string{"Go", "SQL"})
	require.NoError(t, err)
	require.Len(t, recs, 1)
	require.Equal(t, open.ID, recs[0].ID)
}

func TestRecommendCaseSensitiveMatch(t *testing.T) {
	db := openTestDB(t)

	seedPosting(t, db, "Cased", 0, "go", "sql")

	recs, err := Recommend(db, 50, []string{"Go", "SQL"})
	require.NoError(t, err)
	require.Empty(t, recs, "skill matching is exact and case-sensitive")
}

func TestSkillListRoundTrip(t *testing.T) {
	p := Profile{Skills: JoinSkills([]string{" SQL", "Python ", "", "Go"})}
	require.Equal(t, "SQL, Python, Go", p.Skills)
	require.Equal(t, []string{"SQL", "Python", "Go"}, p.SkillList())

	empty := Profile{}
	require.Nil(t, empty.SkillList())
}
