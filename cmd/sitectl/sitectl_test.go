package main

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/advisorsite/internal/db"
	"github.com/advisorsite/internal/defaults"
	"github.com/advisorsite/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupSeedTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := db.Open(db.Options{
		Driver: db.DriverSQLite,
		Path:   fmt.Sprintf("file:sitectl-%d?mode=memory&cache=shared", time.Now().UnixNano()),
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close(gdb) })
	return gdb
}

func TestSeedSiteStoresDefaults(t *testing.T) {
	gdb := setupSeedTestDB(t)
	content := defaults.Static(defaults.Builtin())

	var out bytes.Buffer
	require.NoError(t, seedSite(context.Background(), gdb, content, true, &out))
	assert.Contains(t, out.String(), "✅ hero section")

	site := service.NewSite(gdb, content, nil, nil)
	require.NoError(t, site.LoadAll(context.Background()))

	hero, published := site.Hero.Current()
	require.True(t, published, "seeded hero should be published")
	assert.Equal(t, defaults.Builtin().Hero.Title, hero.Title)
	assert.Len(t, site.Slides.Public(), len(defaults.Builtin().Slides))

	public := site.Public()
	assert.False(t, public.HeroPlaceholder)
	assert.Equal(t, defaults.Builtin().Settings.CompanyName, public.Settings.CompanyName)
	assert.Len(t, public.Services, 3)
	assert.Len(t, public.Team, 3)
	for i, member := range public.Team {
		assert.Equal(t, i, member.OrderIndex)
	}
}

func TestSeedSiteSkipsSectionsWithData(t *testing.T) {
	gdb := setupSeedTestDB(t)
	content := defaults.Static(defaults.Builtin())

	require.NoError(t, seedSite(context.Background(), gdb, content, false, &bytes.Buffer{}))

	var out bytes.Buffer
	require.NoError(t, seedSite(context.Background(), gdb, content, false, &out))
	assert.Contains(t, out.String(), "hero section already has data, skipped")
	assert.NotContains(t, out.String(), "✅")

	var heroes int64
	require.NoError(t, gdb.Model(&db.HeroSection{}).Count(&heroes).Error)
	assert.EqualValues(t, 1, heroes)

	var team int64
	require.NoError(t, gdb.Model(&db.TeamMember{}).Count(&team).Error)
	assert.Zero(t, team, "samples are only added with --samples")
}

func TestUserAddAndPasswd(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("DATABASE_DRIVER", "sqlite")
	t.Setenv("DATABASE_PATH", filepath.Join(dir, "site.db"))
	t.Setenv("CONFIG_FILE", "")

	run := func(args ...string) (string, error) {
		cmd := NewRootCommand()
		var out bytes.Buffer
		cmd.SetOut(&out)
		cmd.SetErr(&out)
		cmd.SetArgs(args)
		err := cmd.Execute()
		return out.String(), err
	}

	out, err := run("user", "add", "owner", "--password", "first-pass")
	require.NoError(t, err)
	assert.Contains(t, out, `Created admin user "owner"`)

	out, err = run("user", "add", "owner", "--password", "other")
	require.NoError(t, err)
	assert.Contains(t, out, "already exists")

	_, err = run("user", "passwd", "owner", "--password", "second-pass")
	require.NoError(t, err)

	_, err = run("user", "passwd", "nobody", "--password", "x")
	assert.Error(t, err)

	gdb, err := db.Open(db.Options{Driver: db.DriverSQLite, Path: filepath.Join(dir, "site.db"), Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	defer db.Close(gdb)

	_, err = db.Authenticate(gdb, "owner", "second-pass")
	assert.NoError(t, err)
	_, err = db.Authenticate(gdb, "owner", "first-pass")
	assert.Error(t, err)
}

func TestDefaultsCommandRoundTrips(t *testing.T) {
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"defaults"})
	require.NoError(t, cmd.Execute())

	var decoded defaults.Content
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &decoded))
	assert.Equal(t, defaults.Builtin().Hero.Title, decoded.Hero.Title)
	assert.True(t, strings.HasPrefix(decoded.Hero.Colors.TitleColor, "#"))
}
