package services

import (
	"context"
	"strings"
	"testing"

	"gocarpool/internal/models"
	"gocarpool/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newUserFixture() (UserService, *fakeUserRepo, *fakeStorage) {
	users := newFakeUserRepo()
	store := newFakeStorage()
	return NewUserService(users, store, testLogger()), users, store
}

func TestUpdateProfile(t *testing.T) {
	svc, users, _ := newUserFixture()
	user := users.add(&models.User{
		ID:    primitive.NewObjectID(),
		Name:  "Dana",
		Email: "dana@example.com",
		Phone: "555-0100",
	})

	name := "Dana R"
	phone := "555-0199"
	updated, err := svc.UpdateProfile(context.Background(), user.ID, &UpdateProfileRequest{
		Name:  &name,
		Phone: &phone,
	})
	require.NoError(t, err)
	assert.Equal(t, "Dana R", updated.Name)
	assert.Equal(t, "555-0199", updated.Phone)

	_, err = svc.UpdateProfile(context.Background(), primitive.NewObjectID(), &UpdateProfileRequest{Name: &name})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUploadProfilePicture(t *testing.T) {
	svc, users, store := newUserFixture()
	user := users.add(&models.User{
		ID:    primitive.NewObjectID(),
		Name:  "Dana",
		Email: "dana@example.com",
	})

	updated, err := svc.UploadProfilePicture(context.Background(), user.ID, &ProfilePictureUpload{
		Filename:    "avatar.PNG",
		ContentType: "image/png",
		Size:        128,
		Reader:      strings.NewReader("fake image bytes"),
	})
	require.NoError(t, err)
	assert.Contains(t, updated.ProfilePicture, "profiles/"+user.ID.Hex()+"/")
	assert.Len(t, store.uploads, 1)
}

func TestUploadProfilePictureRejections(t *testing.T) {
	svc, users, _ := newUserFixture()
	user := users.add(&models.User{ID: primitive.NewObjectID(), Name: "Dana"})

	_, err := svc.UploadProfilePicture(context.Background(), user.ID, &ProfilePictureUpload{
		Filename: "huge.png",
		Size:     utils.MaxProfilePictureSize + 1,
		Reader:   strings.NewReader(""),
	})
	assert.ErrorIs(t, err, ErrFileTooLarge)

	_, err = svc.UploadProfilePicture(context.Background(), user.ID, &ProfilePictureUpload{
		Filename: "resume.pdf",
		Size:     128,
		Reader:   strings.NewReader(""),
	})
	assert.ErrorIs(t, err, ErrUnsupportedFile)
}
