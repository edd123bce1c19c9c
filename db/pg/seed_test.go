package pg

import (
	"context"
	"errors"
	"strings"

	"github.com/go-kit/log"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("Seed script", func() {
	It("should only contain insert statements", func() {
		for _, stmt := range strings.Split(SeedScript(), ";") {
			stmt = strings.TrimSpace(stmt)
			if stmt == "" {
				continue
			}
			Expect(stmt).To(HavePrefix("INSERT INTO "))
		}
	})

	It("should populate every seeded table", func() {
		for _, table := range SeededTables() {
			Expect(SeedScript()).To(ContainSubstring("INSERT INTO " + table + " "))
		}
	})

	It("should return a copy of the seeded tables", func() {
		tables := SeededTables()
		tables[0] = "changed"
		Expect(SeededTables()[0]).To(Equal("customers"))
	})

	It("should create every seeded table in the embedded migrations", func() {
		raw, err := migrations.ReadFile(migrationsDir + "/00001_create_schema.sql")
		Expect(err).To(Succeed())
		Expect(string(raw)).To(HavePrefix("-- +goose Up"))

		for _, table := range SeededTables() {
			Expect(string(raw)).To(ContainSubstring("CREATE TABLE IF NOT EXISTS " + table + " ("))
		}
	})

	Describe("Seed", func() {
		It("should send the whole script as one statement", func() {
			exec := &fakeExecer{}
			Expect(Seed(context.Background(), exec)).To(Succeed())

			Expect(exec.calls).To(HaveLen(1))
			Expect(exec.calls[0].query).To(Equal(SeedScript()))
			Expect(exec.calls[0].args).To(BeEmpty())
		})

		It("should wrap execution errors", func() {
			exec := &fakeExecer{err: errors.New("relation does not exist")}

			err := Seed(context.Background(), exec)
			Expect(err).To(MatchError("unable to seed database: relation does not exist"))
		})
	})

	Describe("truncate", func() {
		It("should truncate every seeded table in one statement", func() {
			exec := &fakeExecer{}
			Expect(truncate(context.Background(), exec)).To(Succeed())

			Expect(exec.calls).To(HaveLen(1))
			Expect(exec.calls[0].query).To(Equal(
				`TRUNCATE TABLE "customers", "products", "orders", "order_items" RESTART IDENTITY CASCADE;`,
			))
		})
	})
})

var _ = Describe("Database lifecycle", func() {
	var ctx = context.Background()

	Describe("NewDatabaseName", func() {
		It("should generate unique lower-case names with the prefix", func() {
			a := NewDatabaseName("orders")
			b := NewDatabaseName("orders")

			Expect(a).ToNot(Equal(b))
			Expect(a).To(MatchRegexp(`^orders_[0-9a-v]{20}$`))
			Expect(a).To(Equal(strings.ToLower(a)))
		})

		It("should default the prefix", func() {
			Expect(NewDatabaseName("")).To(HavePrefix("testdb_"))
		})
	})

	Describe("Create", func() {
		It("should quote the database name", func() {
			exec := &fakeExecer{}
			Expect(Create(ctx, exec, `weird"name`)).To(Succeed())
			Expect(exec.calls[0].query).To(Equal(`CREATE DATABASE "weird""name";`))
		})

		It("should wrap errors with the database name", func() {
			exec := &fakeExecer{err: errors.New("already exists")}
			Expect(Create(ctx, exec, "dup")).To(MatchError("unable to create database dup: already exists"))
		})
	})

	Describe("Drop", func() {
		It("should drop only if the database exists", func() {
			exec := &fakeExecer{}
			Expect(Drop(ctx, exec, "gone")).To(Succeed())
			Expect(exec.calls[0].query).To(Equal(`DROP DATABASE IF EXISTS "gone";`))
		})

		It("should wrap errors with the database name", func() {
			exec := &fakeExecer{err: errors.New("in use")}
			Expect(Drop(ctx, exec, "busy")).To(MatchError("unable to drop database busy: in use"))
		})
	})
})

var _ = Describe("gooseLogger", func() {
	It("should forward goose output to the go-kit logger", func() {
		var keyvals [][]any
		l := gooseLogger{log.LoggerFunc(func(kv ...any) error {
			keyvals = append(keyvals, kv)
			return nil
		})}

		l.Printf("OK   %s (%s)\n", "00001_create_schema.sql", "1ms")
		l.Fatalf("failed to open %s", "dir")

		Expect(keyvals).To(Equal([][]any{
			{"msg", "OK   00001_create_schema.sql (1ms)"},
			{"err", "failed to open dir"},
		}))
	})
})

