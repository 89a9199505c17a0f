package service

import (
	"context"
	"testing"
	"wellness_backend/internal/model"
	"wellness_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCommunityRepo struct {
	groups  map[string]*model.Group
	members map[string]bool
	posts   map[string]*model.GroupPost
}

func newStubCommunityRepo() *stubCommunityRepo {
	return &stubCommunityRepo{
		groups:  map[string]*model.Group{},
		members: map[string]bool{},
		posts:   map[string]*model.GroupPost{},
	}
}

func memberKey(groupID, userID string) string { return groupID + "/" + userID }

func (r *stubCommunityRepo) ListGroups(ctx context.Context, offset, limit int, search string) ([]model.Group, int64, error) {
	var out []model.Group
	for _, g := range r.groups {
		out = append(out, *g)
	}
	return out, int64(len(out)), nil
}

func (r *stubCommunityRepo) FindGroup(ctx context.Context, id string) (*model.Group, error) {
	g, ok := r.groups[id]
	if !ok {
		return nil, util.ErrNotFound
	}
	return g, nil
}

func (r *stubCommunityRepo) CreateGroup(ctx context.Context, group *model.Group) error {
	for _, g := range r.groups {
		if g.Name == group.Name {
			return util.ErrGroupNameTaken
		}
	}
	group.ID = model.GenerateUUID()
	group.MemberCount = 1
	r.groups[group.ID] = group
	r.members[memberKey(group.ID, group.CreatorID)] = true
	return nil
}

func (r *stubCommunityRepo) Join(ctx context.Context, groupID, userID string) error {
	if r.members[memberKey(groupID, userID)] {
		return util.ErrAlreadyMember
	}
	r.members[memberKey(groupID, userID)] = true
	r.groups[groupID].MemberCount++
	return nil
}

func (r *stubCommunityRepo) Leave(ctx context.Context, groupID, userID string) error {
	if !r.members[memberKey(groupID, userID)] {
		return util.ErrNotGroupMember
	}
	delete(r.members, memberKey(groupID, userID))
	r.groups[groupID].MemberCount--
	return nil
}

func (r *stubCommunityRepo) IsMember(ctx context.Context, groupID, userID string) (bool, error) {
	return r.members[memberKey(groupID, userID)], nil
}

func (r *stubCommunityRepo) CreatePost(ctx context.Context, post *model.GroupPost) error {
	post.ID = model.GenerateUUID()
	r.posts[post.ID] = post
	return nil
}

func (r *stubCommunityRepo) ListPosts(ctx context.Context, groupID string, offset, limit int) ([]model.GroupPost, int64, error) {
	var out []model.GroupPost
	for _, p := range r.posts {
		if p.GroupID == groupID {
			out = append(out, *p)
		}
	}
	return out, int64(len(out)), nil
}

func (r *stubCommunityRepo) FindPost(ctx context.Context, id string) (*model.GroupPost, error) {
	p, ok := r.posts[id]
	if !ok {
		return nil, util.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *stubCommunityRepo) DeletePost(ctx context.Context, id string) error {
	delete(r.posts, id)
	return nil
}

func (r *stubCommunityRepo) IncrementViews(ctx context.Context, postID string) error {
	r.posts[postID].Views++
	return nil
}

func TestCommunityMembershipAndPosting(t *testing.T) {
	ctx := context.Background()
	repo := newStubCommunityRepo()
	svc := NewCommunityService(repo, nil)

	group, err := svc.CreateGroup(ctx, "alice", GroupRequest{Name: " Sleep better ", Description: "tips"})
	require.NoError(t, err)
	assert.Equal(t, "Sleep better", group.Name)

	_, err = svc.CreateGroup(ctx, "bob", GroupRequest{Name: "Sleep better"})
	assert.ErrorIs(t, err, util.ErrGroupNameTaken)

	_, err = svc.CreatePost(ctx, group.ID, "bob", PostRequest{Content: "hi"})
	assert.ErrorIs(t, err, util.ErrNotGroupMember)

	require.NoError(t, svc.Join(ctx, group.ID, "bob"))
	assert.ErrorIs(t, svc.Join(ctx, group.ID, "bob"), util.ErrAlreadyMember)
	assert.Equal(t, 2, repo.groups[group.ID].MemberCount)

	post, err := svc.CreatePost(ctx, group.ID, "bob", PostRequest{Content: "hi"})
	require.NoError(t, err)
	assert.Equal(t, "bob", post.AuthorID)

	assert.ErrorIs(t, svc.DeletePost(ctx, post.ID, "alice"), util.ErrPermissionDenied)
	require.NoError(t, svc.DeletePost(ctx, post.ID, "bob"))

	require.NoError(t, svc.Leave(ctx, group.ID, "bob"))
	assert.ErrorIs(t, svc.Leave(ctx, group.ID, "bob"), util.ErrNotGroupMember)

	assert.ErrorIs(t, svc.Join(ctx, "missing", "bob"), util.ErrNotFound)
}

func TestCommunityGetPostCountsViewsWithoutRedis(t *testing.T) {
	ctx := context.Background()
	repo := newStubCommunityRepo()
	svc := NewCommunityService(repo, nil)

	group, err := svc.CreateGroup(ctx, "alice", GroupRequest{Name: "Calm"})
	require.NoError(t, err)
	post, err := svc.CreatePost(ctx, group.ID, "alice", PostRequest{Content: "welcome"})
	require.NoError(t, err)

	got, err := svc.GetPost(ctx, post.ID, "bob")
	require.NoError(t, err)
	assert.Equal(t, 1, got.Views)

	_, err = svc.GetPost(ctx, "nope", "bob")
	assert.ErrorIs(t, err, util.ErrNotFound)
}
