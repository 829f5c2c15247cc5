package postgres

const userColumns = `id, name, email, password_hash, role, is_active, created_at, updated_at`

const insertUserSQL = `
INSERT INTO users (id, name, email, password_hash, role, is_active, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
RETURNING ` + userColumns

const getUserByEmailSQL = `SELECT ` + userColumns + ` FROM users WHERE email = $1 LIMIT 1`

const getUserByIDSQL = `SELECT ` + userColumns + ` FROM users WHERE id = $1 LIMIT 1`

const listUsersSQL = `SELECT ` + userColumns + ` FROM users ORDER BY created_at ASC, id ASC`

const ticketColumns = `id, title, description, name, created_by, assigned_to, status, priority, email, created_at, updated_at`

const insertTicketSQL = `
INSERT INTO tickets (id, title, description, name, created_by, assigned_to, status, priority, email, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
`

const getTicketSQL = `SELECT ` + ticketColumns + ` FROM tickets WHERE id = $1`

const getTicketForUpdateSQL = getTicketSQL + ` FOR UPDATE`

const updateTicketSQL = `
UPDATE tickets SET
  title=$2, description=$3, name=$4, assigned_to=$5,
  status=$6, priority=$7, email=$8, updated_at=$9
WHERE id=$1
`

const deleteTicketSQL = `DELETE FROM tickets WHERE id = $1 RETURNING ` + ticketColumns

const commentColumns = `id, ticket_id, author_id, message, created_at, updated_at`

const insertCommentSQL = `
INSERT INTO comments (id, ticket_id, author_id, message, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6)
`

const listCommentsByTicketSQL = `
SELECT ` + commentColumns + `
FROM comments
WHERE ticket_id = $1
ORDER BY created_at ASC, id ASC
`
