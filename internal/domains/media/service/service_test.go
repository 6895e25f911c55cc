package service

import (
	"bytes"
	"context"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fashionmag-backend/internal/infrastructure/storage"
	"fashionmag-backend/internal/shared"
	"fashionmag-backend/internal/shared/apperror"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()
	buf := new(bytes.Buffer)
	require.NoError(t, png.Encode(buf, imaging.New(8, 8, color.White)))
	return buf.Bytes()
}

func TestTalentUploadsUnderOwnPrefix(t *testing.T) {
	store := storage.NewMemoryStorage("http://media.local")
	svc := NewService(store, nil)
	talent := &shared.Actor{ID: uuid.New(), Role: shared.RoleTalent}

	res, err := svc.Upload(context.Background(), talent, UploadRequest{Data: pngBytes(t)})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(res.Key, "talents/"+talent.ID.String()+"/"))
	assert.True(t, strings.HasSuffix(res.Key, ".png"))
	assert.Equal(t, "http://media.local/"+res.Key, res.URL)
	assert.Equal(t, []string{res.Key}, store.Keys())
}

func TestTalentCannotUploadForOthers(t *testing.T) {
	svc := NewService(storage.NewMemoryStorage(""), nil)
	talent := &shared.Actor{ID: uuid.New(), Role: shared.RoleTalent}

	_, err := svc.Upload(context.Background(), talent, UploadRequest{Data: pngBytes(t), TalentID: uuid.NewString()})
	assert.True(t, apperror.IsKind(err, apperror.KindForbidden))
}

func TestAdminUploadsByKind(t *testing.T) {
	svc := NewService(storage.NewMemoryStorage(""), nil)
	admin := &shared.Actor{ID: uuid.New(), Role: shared.RoleAdmin}

	res, err := svc.Upload(context.Background(), admin, UploadRequest{Data: pngBytes(t), Kind: "hero-slides"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(res.Key, "content/hero/"))

	_, err = svc.Upload(context.Background(), admin, UploadRequest{Data: pngBytes(t)})
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))

	talentID := uuid.New()
	res, err = svc.Upload(context.Background(), admin, UploadRequest{Data: pngBytes(t), TalentID: talentID.String()})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(res.Key, "talents/"+talentID.String()+"/"))
}

func TestUploadRejectsNonImages(t *testing.T) {
	svc := NewService(storage.NewMemoryStorage(""), nil)
	talent := &shared.Actor{ID: uuid.New(), Role: shared.RoleTalent}

	_, err := svc.Upload(context.Background(), talent, UploadRequest{Data: []byte("%PDF-1.4")})
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))

	_, err = svc.Upload(context.Background(), nil, UploadRequest{Data: pngBytes(t)})
	assert.True(t, apperror.IsKind(err, apperror.KindUnauthorized))
}
