//go:build integration

package mysql_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"

	"hotel_reservation/internal/domain"
	mysqlrepo "hotel_reservation/internal/storage/mysql"
)

// connectMySQL starts a throwaway MySQL container and returns a migrated Store.
func connectMySQL(t *testing.T) *mysqlrepo.Store {
	t.Helper()
	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Fatalf("dockertest: %v", err)
	}
	pool.MaxWait = 2 * time.Minute

	res, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "mysql",
		Tag:        "8.0.36",
		Env:        []string{"MYSQL_ROOT_PASSWORD=root", "MYSQL_DATABASE=hotel"},
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("run mysql: %v", err)
	}
	t.Cleanup(func() { _ = pool.Purge(res) })

	dsn := fmt.Sprintf("root:root@tcp(127.0.0.1:%s)/hotel?parseTime=true&charset=utf8mb4&loc=UTC",
		res.GetPort("3306/tcp"))

	var st *mysqlrepo.Store
	err = pool.Retry(func() error {
		s, db, err := mysqlrepo.Connect(context.Background(), dsn, true)
		if err != nil {
			return err
		}
		t.Cleanup(func() { _ = db.Close() })
		st = s
		return nil
	})
	if err != nil {
		t.Fatalf("connect mysql: %v", err)
	}
	return st
}

func TestStore_MySQL_SaveQueryDelete(t *testing.T) {
	st := connectMySQL(t)
	ctx := context.Background()

	h, err := st.Hotels().Save(ctx, domain.Hotel{Name: "Hôtel Plaza", Phone: "+33 1", Address: "Paris"})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	for i, u := range []string{"https://cdn/2.jpg", "https://cdn/1.jpg"} {
		if _, err := st.Images().Save(ctx, domain.HotelImage{HotelIdx: h.Idx, URL: u, SortOrder: 1 - i}); err != nil {
			t.Fatalf("Save image: %v", err)
		}
	}

	out, err := st.Hotels().FindByNameLike(ctx, "%Plaza%")
	if err != nil || len(out) != 1 || out[0].Name != "Hôtel Plaza" {
		t.Fatalf("FindByNameLike: %+v, %v", out, err)
	}
	imgs, err := st.Images().FindByHotelIdx(ctx, h.Idx)
	if err != nil || len(imgs) != 2 || imgs[0].URL != "https://cdn/1.jpg" {
		t.Fatalf("FindByHotelIdx: %+v, %v", imgs, err)
	}

	err = st.WithTx(ctx, func(tx domain.Store) error {
		if err := tx.Images().DeleteByHotelIdx(ctx, h.Idx); err != nil {
			return err
		}
		return tx.Hotels().DeleteByID(ctx, h.Idx)
	})
	if err != nil {
		t.Fatalf("delete tx: %v", err)
	}
	if _, err := st.Hotels().FindByID(ctx, h.Idx); err != domain.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
