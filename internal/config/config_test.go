package config_test

import (
	"testing"

	"github.com/okian/scribe/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.PlagiarismThreshold, convey.ShouldEqual, 0.75)
			convey.So(cfg.PassMark, convey.ShouldEqual, 40)
			convey.So(cfg.Encoder, convey.ShouldEqual, "local")
			convey.So(cfg.EmbedDimensions, convey.ShouldEqual, 384)
			convey.So(cfg.MaxTokens, convey.ShouldEqual, 512)
			convey.So(cfg.DBPath, convey.ShouldEqual, "scribe.db")
			convey.So(cfg.AuditQueueSize, convey.ShouldBeGreaterThan, 0)
			convey.So(cfg.AuditWriterCount, convey.ShouldBeGreaterThan, 0)
		})
	})
}
