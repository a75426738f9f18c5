package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	intconfig "backend/internal/config"

	"github.com/gin-gonic/gin"
)

// GET /api/users (auth, admin role)
func ListUsers(c *gin.Context) {
	rows, err := intconfig.DB.Query(`
        SELECT id, name, email, phone, role, status
        FROM users
        ORDER BY id ASC
    `)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to query users", err)
		return
	}
	defer rows.Close()

	users := []AuthUser{}
	for rows.Next() {
		var u AuthUser
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.Role, &u.Status); err != nil {
			RespondError(c, http.StatusInternalServerError, "failed to scan user", err)
			return
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to read users", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users, "count": len(users)})
}

// GET /api/users/:id (auth)
func GetUserByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "invalid user id", err)
		return
	}

	var user AuthUser
	err = intconfig.DB.QueryRow(`
        SELECT id, name, email, phone, role, status
        FROM users
        WHERE id = ?
    `, id).Scan(&user.ID, &user.Name, &user.Email, &user.Phone, &user.Role, &user.Status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			RespondError(c, http.StatusNotFound, "user not found", nil)
			return
		}
		RespondError(c, http.StatusInternalServerError, "failed to query user", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}
