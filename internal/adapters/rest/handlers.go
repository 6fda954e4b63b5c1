package rest

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/example/kanban/internal/core/board"
	"github.com/example/kanban/internal/ports/primary"
)

type handlers struct {
	workspaces primary.WorkspaceService
	boards     primary.BoardService
}

// ============================================================================
// Workspaces
// ============================================================================

func (h *handlers) listWorkspaces(c echo.Context) error {
	workspaces, err := h.workspaces.ListWorkspaces(c.Request().Context())
	if err != nil {
		return err
	}
	body := make([]workspaceResponse, 0, len(workspaces))
	for _, ws := range workspaces {
		body = append(body, toWorkspaceResponse(ws))
	}
	return c.JSON(http.StatusOK, body)
}

func (h *handlers) createWorkspace(c echo.Context) error {
	var body workspaceBody
	if err := decodeBody(c, &body); err != nil {
		return err
	}
	ws, err := h.workspaces.CreateWorkspace(c.Request().Context(), primary.CreateWorkspaceRequest{
		Name:        body.Name,
		Description: body.Description,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toWorkspaceResponse(ws))
}

func (h *handlers) getWorkspace(c echo.Context) error {
	ws, err := h.workspaces.GetWorkspace(c.Request().Context(), c.Param("workspaceId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toWorkspaceResponse(ws))
}

func (h *handlers) updateWorkspace(c echo.Context) error {
	var body workspacePatchBody
	if err := decodeBody(c, &body); err != nil {
		return err
	}
	ws, err := h.workspaces.UpdateWorkspace(c.Request().Context(), primary.UpdateWorkspaceRequest{
		WorkspaceID: c.Param("workspaceId"),
		Name:        body.Name,
		Description: body.Description,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toWorkspaceResponse(ws))
}

func (h *handlers) deleteWorkspace(c echo.Context) error {
	if err := h.workspaces.DeleteWorkspace(c.Request().Context(), c.Param("workspaceId")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *handlers) listBoards(c echo.Context) error {
	boards, err := h.boards.ListBoards(c.Request().Context(), c.Param("workspaceId"))
	if err != nil {
		return err
	}
	body := make([]boardResponse, 0, len(boards))
	for _, b := range boards {
		body = append(body, toBoardResponse(b))
	}
	return c.JSON(http.StatusOK, body)
}

// ============================================================================
// Boards
// ============================================================================

func (h *handlers) createBoard(c echo.Context) error {
	var body boardBody
	if err := decodeBody(c, &body); err != nil {
		return err
	}
	b, err := h.boards.CreateBoard(c.Request().Context(), primary.CreateBoardRequest{
		WorkspaceID: body.WorkspaceID,
		Name:        body.Name,
		Description: body.Description,
	})
	return respondBoard(c, http.StatusCreated, b, err)
}

func (h *handlers) getBoard(c echo.Context) error {
	b, err := h.boards.GetBoard(c.Request().Context(), c.Param("boardId"))
	return respondBoard(c, http.StatusOK, b, err)
}

func (h *handlers) updateBoard(c echo.Context) error {
	var body boardPatchBody
	if err := decodeBody(c, &body); err != nil {
		return err
	}
	b, err := h.boards.UpdateBoard(c.Request().Context(), primary.UpdateBoardRequest{
		BoardID:     c.Param("boardId"),
		Name:        body.Name,
		Description: body.Description,
	})
	return respondBoard(c, http.StatusOK, b, err)
}

func (h *handlers) deleteBoard(c echo.Context) error {
	if err := h.boards.DeleteBoard(c.Request().Context(), c.Param("boardId")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *handlers) moveCard(c echo.Context) error {
	var body moveCardBody
	if err := decodeBody(c, &body); err != nil {
		return err
	}
	b, err := h.boards.MoveCard(c.Request().Context(), primary.MoveCardRequest{
		BoardID:        c.Param("boardId"),
		CardID:         c.Param("cardId"),
		SourceColumnID: body.SourceColumnID,
		TargetColumnID: body.TargetColumnID,
	})
	return respondBoard(c, http.StatusOK, b, err)
}

// ============================================================================
// Columns
// ============================================================================

func (h *handlers) createColumn(c echo.Context) error {
	var body columnBody
	if err := decodeBody(c, &body); err != nil {
		return err
	}
	b, err := h.boards.CreateColumn(c.Request().Context(), primary.CreateColumnRequest{
		BoardID:  c.Param("boardId"),
		Name:     body.Name,
		Position: body.Position,
	})
	return respondBoard(c, http.StatusCreated, b, err)
}

func (h *handlers) updateColumn(c echo.Context) error {
	var body columnPatchBody
	if err := decodeBody(c, &body); err != nil {
		return err
	}
	b, err := h.boards.UpdateColumn(c.Request().Context(), primary.UpdateColumnRequest{
		BoardID:  c.Param("boardId"),
		ColumnID: c.Param("columnId"),
		Name:     body.Name,
		Position: body.Position,
	})
	return respondBoard(c, http.StatusOK, b, err)
}

func (h *handlers) deleteColumn(c echo.Context) error {
	b, err := h.boards.DeleteColumn(c.Request().Context(), primary.DeleteColumnRequest{
		BoardID:  c.Param("boardId"),
		ColumnID: c.Param("columnId"),
	})
	return respondBoard(c, http.StatusOK, b, err)
}

// ============================================================================
// Cards
// ============================================================================

func (h *handlers) createCard(c echo.Context) error {
	var body cardBody
	if err := decodeBody(c, &body); err != nil {
		return err
	}
	b, err := h.boards.CreateCard(c.Request().Context(), primary.CreateCardRequest{
		BoardID:     c.Param("boardId"),
		ColumnID:    c.Param("columnId"),
		Title:       body.Title,
		Description: body.Description,
	})
	return respondBoard(c, http.StatusCreated, b, err)
}

func (h *handlers) updateCard(c echo.Context) error {
	var body cardPatchBody
	if err := decodeBody(c, &body); err != nil {
		return err
	}
	b, err := h.boards.UpdateCard(c.Request().Context(), primary.UpdateCardRequest{
		BoardID:     c.Param("boardId"),
		ColumnID:    c.Param("columnId"),
		CardID:      c.Param("cardId"),
		Title:       body.Title,
		Description: body.Description,
	})
	return respondBoard(c, http.StatusOK, b, err)
}

func (h *handlers) deleteCard(c echo.Context) error {
	err := h.boards.DeleteCard(c.Request().Context(), primary.DeleteCardRequest{
		BoardID:  c.Param("boardId"),
		ColumnID: c.Param("columnId"),
		CardID:   c.Param("cardId"),
	})
	if err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func respondBoard(c echo.Context, status int, b *board.Board, err error) error {
	if err != nil {
		return err
	}
	return c.JSON(status, toBoardResponse(b))
}
