package boards

// Modal names on the boards page.
const (
	ModalCreateBoard = "createBoard"
	ModalRenameBoard = "renameBoard"
	ModalDeleteBoard = "deleteBoard"
)

// OpenModal shows a dialog.
func (c *Controller) OpenModal(name string) {
	if c.modals == nil {
		c.modals = make(map[string]bool)
	}
	c.modals[name] = true
}

// CloseModal hides a dialog. Clicking the backdrop routes here too.
func (c *Controller) CloseModal(name string) {
	delete(c.modals, name)
}

// ModalOpen reports whether a dialog is currently shown.
func (c *Controller) ModalOpen(name string) bool {
	return c.modals[name]
}
