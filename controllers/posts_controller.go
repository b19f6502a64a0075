package controllers

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"inkwell/middlewares"
	"inkwell/models"
	"inkwell/validation"
	"inkwell/views"
)

// PostHandler serves the post CRUD pages. The database pool, view registry and
// upload filter are injected at startup.
type PostHandler struct {
	DB      *sql.DB
	Views   *views.Registry
	Uploads *middlewares.Uploader
}

// SetupPostRoutes registers the post routes on the router. The upload filter
// wraps only the two multipart routes, tagged with the form it must re-render
// on rejection.
func (h *PostHandler) SetupPostRoutes(r *mux.Router) {
	createUpload := h.Uploads.Filter("create.html", h.Views)
	editUpload := h.Uploads.Filter("edit.html", h.Views)

	r.HandleFunc("/", h.List).Methods("GET")
	r.HandleFunc("/create", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/posts/new", http.StatusFound)
	}).Methods("GET")
	r.HandleFunc("/posts/new", h.New).Methods("GET")
	r.Handle("/posts", createUpload(http.HandlerFunc(h.Create))).Methods("POST")
	r.HandleFunc("/posts/{id:[0-9]+}", h.Show).Methods("GET")
	r.HandleFunc("/posts/{id:[0-9]+}/edit", h.Edit).Methods("GET")
	r.Handle("/posts/{id:[0-9]+}", editUpload(http.HandlerFunc(h.Update))).Methods("PUT")
	r.HandleFunc("/posts/{id:[0-9]+}", h.Delete).Methods("DELETE")
}

// List renders all posts, newest first.
func (h *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	posts, err := h.fetchPosts(r.Context())
	if err != nil {
		h.Views.HttpError(w, "Database error", http.StatusInternalServerError, err)
		return
	}

	h.Views.Render(w, http.StatusOK, "home.html", map[string]any{
		"Title": "Home",
		"Posts": posts,
	})
}

// New renders the empty create form.
func (h *PostHandler) New(w http.ResponseWriter, r *http.Request) {
	h.Views.Render(w, http.StatusOK, "create.html", map[string]any{
		"Title": "New Post",
		"Post":  models.Post{},
	})
}

// Show renders a single post.
func (h *PostHandler) Show(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)

	post, err := h.fetchPost(r.Context(), id)
	if errors.Is(err, sql.ErrNoRows) {
		h.Views.RenderError(w, http.StatusNotFound, "Post not found")
		return
	}
	if err != nil {
		h.Views.HttpError(w, "Database error", http.StatusInternalServerError, err)
		return
	}

	h.Views.Render(w, http.StatusOK, "detail.html", map[string]any{
		"Title": post.Title,
		"Post":  post,
	})
}

// Create inserts a new post, with the optional image stored by the upload
// filter. A stored file is discarded whenever no row ends up referencing it.
func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	title := r.FormValue("title")
	content := r.FormValue("content")
	upload := middlewares.UploadedFile(r)

	if err := validation.ValidatePostForm(validation.PostForm{Title: title, Content: content}); err != nil {
		h.Uploads.Discard(upload)
		h.Views.Render(w, http.StatusBadRequest, "create.html", map[string]any{
			"Title": "New Post",
			"Error": err.Error(),
			"Post":  models.Post{Title: title, Content: content},
		})
		return
	}

	image := models.DefaultImage
	if upload != "" {
		image = "uploads/" + upload
	}

	id, err := h.insertPost(r.Context(), title, image, content)
	if err != nil {
		h.Uploads.Discard(upload)
		log.Printf("HTTP %d - creating post: %v", http.StatusInternalServerError, err)
		h.Views.Render(w, http.StatusInternalServerError, "create.html", map[string]any{
			"Title": "New Post",
			"Error": "Database error while creating post",
			"Post":  models.Post{Title: title, Content: content},
		})
		return
	}

	http.Redirect(w, r, fmt.Sprintf("/posts/%d", id), http.StatusSeeOther)
}

// Edit renders the edit form pre-filled with the stored post.
func (h *PostHandler) Edit(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)

	post, err := h.fetchPost(r.Context(), id)
	if errors.Is(err, sql.ErrNoRows) {
		h.Views.RenderError(w, http.StatusNotFound, "Post not found")
		return
	}
	if err != nil {
		h.Views.HttpError(w, "Database error", http.StatusInternalServerError, err)
		return
	}

	h.Views.Render(w, http.StatusOK, "edit.html", map[string]any{
		"Title": "Edit Post",
		"Post":  post,
	})
}

// Update overwrites title, content and image of an existing post. Image
// precedence: a new upload wins, then removeImage=true resets to the default
// sentinel, otherwise the stored image is kept. created_at is never touched.
func (h *PostHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)
	title := r.FormValue("title")
	content := r.FormValue("content")
	upload := middlewares.UploadedFile(r)

	existing, err := h.fetchPost(r.Context(), id)
	if errors.Is(err, sql.ErrNoRows) {
		h.Uploads.Discard(upload)
		h.Views.RenderError(w, http.StatusNotFound, "Post not found")
		return
	}
	if err != nil {
		h.Uploads.Discard(upload)
		h.Views.HttpError(w, "Database error", http.StatusInternalServerError, err)
		return
	}

	if err := validation.ValidatePostForm(validation.PostForm{Title: title, Content: content}); err != nil {
		h.Uploads.Discard(upload)
		h.Views.Render(w, http.StatusBadRequest, "edit.html", map[string]any{
			"Title": "Edit Post",
			"Error": err.Error(),
			"Post":  models.Post{ID: id, Title: title, Content: content, Image: existing.Image},
		})
		return
	}

	image := existing.Image
	switch {
	case upload != "":
		image = "uploads/" + upload
	case r.FormValue("removeImage") == "true":
		image = models.DefaultImage
	}

	affected, err := h.updatePost(r.Context(), id, title, image, content)
	if err != nil {
		h.Uploads.Discard(upload)
		h.Views.HttpError(w, "Database error", http.StatusInternalServerError, err)
		return
	}
	if affected == 0 {
		// The post vanished between lookup and update.
		h.Uploads.Discard(upload)
		h.Views.RenderError(w, http.StatusNotFound, "Post not found")
		return
	}

	http.Redirect(w, r, fmt.Sprintf("/posts/%d", id), http.StatusSeeOther)
}

// Delete removes a post and returns to the listing.
func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)

	affected, err := h.deletePost(r.Context(), id)
	if err != nil {
		h.Views.HttpError(w, "Database error", http.StatusInternalServerError, err)
		return
	}
	if affected == 0 {
		h.Views.RenderError(w, http.StatusNotFound, "Post not found")
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *PostHandler) fetchPosts(ctx context.Context) ([]models.Post, error) {
	rows, err := h.DB.QueryContext(ctx,
		"SELECT id, title, image, content, created_at FROM posts ORDER BY created_at DESC")
	if err != nil {
		return nil, errors.Wrap(err, "querying posts")
	}
	defer rows.Close()

	var posts []models.Post
	for rows.Next() {
		var post models.Post
		if err := rows.Scan(&post.ID, &post.Title, &post.Image, &post.Content, &post.CreatedAt); err != nil {
			return nil, errors.Wrap(err, "scanning post row")
		}
		posts = append(posts, post)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterating post rows")
	}

	return posts, nil
}

func (h *PostHandler) fetchPost(ctx context.Context, id int64) (models.Post, error) {
	var post models.Post
	err := h.DB.QueryRowContext(ctx,
		"SELECT id, title, image, content, created_at FROM posts WHERE id = $1", id).
		Scan(&post.ID, &post.Title, &post.Image, &post.Content, &post.CreatedAt)
	if err != nil {
		return models.Post{}, err
	}
	return post, nil
}

func (h *PostHandler) insertPost(ctx context.Context, title, image, content string) (int64, error) {
	var id int64
	err := h.DB.QueryRowContext(ctx,
		"INSERT INTO posts (title, image, content, created_at) VALUES ($1, $2, $3, $4) RETURNING id",
		title, image, content, time.Now()).Scan(&id)
	return id, err
}

func (h *PostHandler) updatePost(ctx context.Context, id int64, title, image, content string) (int64, error) {
	res, err := h.DB.ExecContext(ctx,
		"UPDATE posts SET title = $1, image = $2, content = $3 WHERE id = $4",
		title, image, content, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (h *PostHandler) deletePost(ctx context.Context, id int64) (int64, error) {
	res, err := h.DB.ExecContext(ctx, "DELETE FROM posts WHERE id = $1", id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// pathID reads the numeric id path variable. The route pattern guarantees it
// parses.
func pathID(r *http.Request) int64 {
	id, _ := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	return id
}
