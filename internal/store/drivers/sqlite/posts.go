package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"github.com/aussiebroadwan/pastel/internal/domain"
)

type postsRepo struct {
	db dbtx
}

func (r *postsRepo) GetPostByID(ctx context.Context, id int64) (domain.Post, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, author_id, caption, created_at, updated_at FROM posts WHERE id = ?`, id)

	var p domain.Post
	if err := row.Scan(&p.ID, &p.AuthorID, &p.Caption, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return domain.Post{}, mapNotFound(err)
	}

	images, err := r.imagesFor(ctx, []int64{p.ID})
	if err != nil {
		return domain.Post{}, err
	}
	p.Images = images[p.ID]
	return p, nil
}

func (r *postsRepo) CreatePost(ctx context.Context, p domain.Post) (domain.Post, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO posts (author_id, caption) VALUES (?, ?)`, p.AuthorID, p.Caption)
	if err != nil {
		return domain.Post{}, mapConstraint(err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return domain.Post{}, err
	}

	for _, img := range p.Images {
		if _, err := r.db.ExecContext(ctx,
			`INSERT INTO post_images (post_id, url) VALUES (?, ?)`, id, img.URL); err != nil {
			return domain.Post{}, err
		}
	}

	return r.GetPostByID(ctx, id)
}

func (r *postsRepo) ListPostsByAuthor(ctx context.Context, authorID int64) ([]domain.Post, error) {
	return r.ListPostsByAuthors(ctx, []int64{authorID})
}

func (r *postsRepo) ListPostsByAuthors(ctx context.Context, authorIDs []int64) ([]domain.Post, error) {
	if len(authorIDs) == 0 {
		return nil, nil
	}

	placeholders := strings.Repeat("?,", len(authorIDs))
	placeholders = placeholders[:len(placeholders)-1]

	args := make([]any, len(authorIDs))
	for i, id := range authorIDs {
		args[i] = id
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, author_id, caption, created_at, updated_at
		 FROM posts WHERE author_id IN (`+placeholders+`)
		 ORDER BY created_at DESC, id DESC`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []domain.Post
	var postIDs []int64
	for rows.Next() {
		var p domain.Post
		if err := rows.Scan(&p.ID, &p.AuthorID, &p.Caption, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		posts = append(posts, p)
		postIDs = append(postIDs, p.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	images, err := r.imagesFor(ctx, postIDs)
	if err != nil {
		return nil, err
	}
	for i := range posts {
		posts[i].Images = images[posts[i].ID]
	}
	return posts, nil
}

func (r *postsRepo) UpdateCaption(ctx context.Context, postID int64, caption string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE posts SET caption = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		caption, postID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err != nil {
		return err
	} else if n == 0 {
		return mapNotFound(sql.ErrNoRows)
	}
	return nil
}

func (r *postsRepo) ReplaceImages(ctx context.Context, postID int64, urls []string) error {
	if _, err := r.db.ExecContext(ctx,
		`DELETE FROM post_images WHERE post_id = ?`, postID); err != nil {
		return err
	}
	for _, url := range urls {
		if _, err := r.db.ExecContext(ctx,
			`INSERT INTO post_images (post_id, url) VALUES (?, ?)`, postID, url); err != nil {
			return err
		}
	}
	return nil
}

func (r *postsRepo) DeletePost(ctx context.Context, postID int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE id = ?`, postID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err != nil {
		return err
	} else if n == 0 {
		return mapNotFound(sql.ErrNoRows)
	}
	return nil
}

// imagesFor loads images for the given post ids, keyed by post id.
func (r *postsRepo) imagesFor(ctx context.Context, postIDs []int64) (map[int64][]domain.PostImage, error) {
	if len(postIDs) == 0 {
		return nil, nil
	}

	placeholders := strings.Repeat("?,", len(postIDs))
	placeholders = placeholders[:len(placeholders)-1]

	args := make([]any, len(postIDs))
	for i, id := range postIDs {
		args[i] = id
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, post_id, url FROM post_images
		 WHERE post_id IN (`+placeholders+`) ORDER BY id`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	images := make(map[int64][]domain.PostImage)
	for rows.Next() {
		var img domain.PostImage
		if err := rows.Scan(&img.ID, &img.PostID, &img.URL); err != nil {
			return nil, err
		}
		images[img.PostID] = append(images[img.PostID], img)
	}
	return images, rows.Err()
}
