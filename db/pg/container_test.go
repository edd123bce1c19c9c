package pg

import (
	"context"
	"os"

	"github.com/go-kit/log"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("Container", func() {
	It("should start a server that can host a seeded test database", func() {
		if os.Getenv("TESTDB_DOCKER") == "" {
			Skip("TESTDB_DOCKER not set")
		}

		ctx := context.Background()
		cfg, err := LoadConfig()
		Expect(err).To(Succeed())

		ctr, err := StartContainer(ctx, cfg)
		Expect(err).To(Succeed())
		defer ctr.Terminate(ctx)

		Expect(ctr.Config().Port).ToNot(BeZero())
		Expect(ctr.Config().Image).To(Equal(cfg.Image))

		subject, err := Setup(ctx, ctr.Config(), WithLogger(log.NewNopLogger()))
		Expect(err).To(Succeed())
		defer subject.Close(ctx)

		Expect(countRows(subject.DB, "customers")).To(Equal(3))
	})
})
