package config_test

import (
	"testing"
	"time"

	"github.com/smartystreets/goconvey/convey"

	"github.com/julianstephens/streakline/internal/config"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.LogLevel, convey.ShouldEqual, "warn")
			convey.So(cfg.CacheTTL, convey.ShouldEqual, 30*time.Second)
			convey.So(cfg.Timezone, convey.ShouldBeEmpty)
			convey.So(cfg.DB, convey.ShouldEqual, "~/.config/streakline/streakline.db")
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})
}
