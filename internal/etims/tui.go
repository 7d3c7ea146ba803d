package etims

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Version info
const (
	Version = "0.4.1"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#00715D")).
			Padding(0, 1)

	statusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFDF5")).
			Background(lipgloss.Color("#333333")).
			Padding(0, 1)

	vpnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#04B575")).
			Bold(true)

	internetStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF9500")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#04B575")).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))

	creditStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Italic(true)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00715D")).
			Bold(true)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#00715D")).
			Padding(1, 2)

	notificationSuccess = lipgloss.NewStyle().
				Background(lipgloss.Color("#04B575")).
				Foreground(lipgloss.Color("#FFF")).
				Padding(0, 1).
				Bold(true)

	notificationError = lipgloss.NewStyle().
				Background(lipgloss.Color("#FF4444")).
				Foreground(lipgloss.Color("#FFF")).
				Padding(0, 1).
				Bold(true)

	breadcrumbStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))
)

// View represents different screens
type View int

const (
	ViewMain View = iota
	ViewUsers
	ViewUserDetail
	ViewPurchases
	ViewPurchaseDetail
	ViewItems
	ViewMovements
	ViewMovementDetail
	ViewNotices
	ViewConfirmAction
)

// MenuItem for the main menu
type MenuItem struct {
	title       string
	description string
	view        View
}

func (i MenuItem) Title() string       { return i.title }
func (i MenuItem) Description() string { return i.description }
func (i MenuItem) FilterValue() string { return i.title }

// ListItem for record lists
type ListItem struct {
	name    string
	details string
}

func (i ListItem) Title() string       { return i.name }
func (i ListItem) Description() string { return i.details }
func (i ListItem) FilterValue() string { return i.name }

// Model is the main TUI model
type Model struct {
	client       *Client
	view         View
	prevView     View
	width        int
	height       int
	mainMenu     list.Model
	currentList  list.Model
	message      string
	messageType  string
	loading      bool
	selectedItem string
	itemData     map[string]interface{}
	spinner      spinner.Model
	breadcrumbs  []string

	confirmAction string
	confirmMsg    string

	notification     string
	notificationType string
	showNotification bool
}

// Messages
type connectedMsg struct {
	mode string
	url  string
}

type errorMsg struct {
	err error
}

type dataLoadedMsg struct {
	items []ListItem
}

type recordDetailMsg struct {
	data map[string]interface{}
}

// queuedAckMsg is the only success signal a compliance action produces; the
// server reports everything else.
type queuedAckMsg struct{}

type validationMsg struct {
	mapped bool
}

type clearNotificationMsg struct{}

// NewTUI creates a new TUI model
func NewTUI(client *Client) Model {
	menuItems := []list.Item{
		MenuItem{"Branch Users", "Submit details, bulk create from branches", ViewUsers},
		MenuItem{"Registered Purchases", "Fetch purchases, create suppliers / items / invoices", ViewPurchases},
		MenuItem{"Item Registry", "Register items, search imported items", ViewItems},
		MenuItem{"Stock Movements", "Fetch movements, create stock entries", ViewMovements},
		MenuItem{"Notices", "Tax authority notices", ViewNotices},
	}

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = selectedStyle
	delegate.Styles.SelectedDesc = lipgloss.NewStyle().Foreground(lipgloss.Color("#00715D"))

	mainMenu := list.New(menuItems, delegate, 0, 0)
	mainMenu.Title = client.Config.Brand
	mainMenu.SetShowStatusBar(false)
	mainMenu.SetFilteringEnabled(false)
	mainMenu.Styles.Title = titleStyle

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#00715D"))

	return Model{
		client:      client,
		view:        ViewMain,
		mainMenu:    mainMenu,
		loading:     true,
		spinner:     s,
		breadcrumbs: []string{"Main"},
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.detectConnection(),
		m.spinner.Tick,
	)
}

func (m Model) detectConnection() tea.Cmd {
	return func() tea.Msg {
		m.client.DetectConnection()
		return connectedMsg{
			mode: m.client.Mode,
			url:  m.client.ActiveURL,
		}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.message = ""
		m.messageType = ""

		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "q":
			if m.view == ViewMain {
				return m, tea.Quit
			}
			m.view = ViewMain
			m.breadcrumbs = []string{"Main"}
			return m, nil

		case "esc":
			switch m.view {
			case ViewMain:
				// Do nothing at main
			case ViewUserDetail:
				m.view = ViewUsers
				m.trimBreadcrumbs()
			case ViewPurchaseDetail:
				m.view = ViewPurchases
				m.trimBreadcrumbs()
			case ViewMovementDetail:
				m.view = ViewMovements
				m.trimBreadcrumbs()
			case ViewConfirmAction:
				m.view = m.prevView
			default:
				m.view = ViewMain
				m.breadcrumbs = []string{"Main"}
			}
			return m, nil

		case "enter":
			return m.handleEnter()

		case "y":
			if m.view == ViewConfirmAction {
				cmd := m.handleConfirmAction(true)
				return m, cmd
			}

		case "n":
			if m.view == ViewConfirmAction {
				cmd := m.handleConfirmAction(false)
				return m, cmd
			}

		case "r":
			return m.refreshCurrentView()

		case "f":
			// Fetch actions fire a search for all active branches
			switch m.view {
			case ViewPurchases:
				m.loading = true
				return m, m.remoteSearch(MethodPurchasesSearchAll)
			case ViewItems:
				m.loading = true
				return m, m.remoteSearch(MethodImportItemSearchAll)
			case ViewMovements:
				m.loading = true
				return m, m.remoteSearch(MethodStockMovementSearchAll)
			case ViewNotices:
				m.loading = true
				return m, m.remoteSearch(MethodNoticeSearch)
			}

		case "s":
			switch m.view {
			case ViewUsers:
				if item, ok := m.currentList.SelectedItem().(ListItem); ok {
					return m.confirm("submit_user", item.name,
						fmt.Sprintf("Submit branch user details for %q?", item.name)), nil
				}
			case ViewUserDetail:
				return m.confirm("submit_user", m.selectedItem,
					fmt.Sprintf("Submit branch user details for %q?", m.selectedItem)), nil
			case ViewPurchaseDetail:
				return m.confirm("create_supplier", m.selectedItem,
					fmt.Sprintf("Create supplier from %q?", m.selectedItem)), nil
			}

		case "b":
			if m.view == ViewUsers {
				return m.confirm("bulk_create_users", "",
					"Create branch users for all active branches?"), nil
			}

		case "c":
			if m.view == ViewPurchaseDetail {
				return m.confirm("create_items", m.selectedItem,
					fmt.Sprintf("Create items from %q?", m.selectedItem)), nil
			}

		case "v":
			if m.view == ViewPurchaseDetail {
				m.loading = true
				return m, m.validatePurchaseItems()
			}

		case "i":
			if m.view == ViewPurchaseDetail {
				return m.confirm("create_invoice", m.selectedItem,
					fmt.Sprintf("Create purchase invoice from %q?", m.selectedItem)), nil
			}

		case "g":
			if m.view == ViewItems {
				if item, ok := m.currentList.SelectedItem().(ListItem); ok {
					return m.confirm("register_item", item.name,
						fmt.Sprintf("Register item %q?", item.name)), nil
				}
			}

		case "a":
			if m.view == ViewItems {
				return m.confirm("register_all", "",
					fmt.Sprintf("Register all %d listed items?", len(m.currentList.Items()))), nil
			}

		case "e":
			if m.view == ViewMovementDetail {
				return m.confirm("create_stock_entry", m.selectedItem,
					fmt.Sprintf("Create stock entry from %q?", m.selectedItem)), nil
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		h := msg.Height - 8
		w := msg.Width - 4

		m.mainMenu.SetSize(w, h)
		if m.currentList.Items() != nil {
			m.currentList.SetSize(w, h)
		}

	case connectedMsg:
		m.loading = false
		m.client.Mode = msg.mode
		m.client.ActiveURL = msg.url
		return m, nil

	case errorMsg:
		m.loading = false
		m.message = msg.err.Error()
		m.messageType = "error"
		return m, nil

	case dataLoadedMsg:
		m.loading = false
		items := make([]list.Item, len(msg.items))
		for i, item := range msg.items {
			items[i] = item
		}

		delegate := list.NewDefaultDelegate()
		delegate.Styles.SelectedTitle = selectedStyle

		m.currentList = list.New(items, delegate, m.width-4, m.height-8)
		m.currentList.SetShowStatusBar(true)
		m.currentList.SetFilteringEnabled(true)
		m.setListTitle()
		return m, nil

	case recordDetailMsg:
		m.loading = false
		m.itemData = msg.data
		return m, nil

	case queuedAckMsg:
		m.loading = false
		m.notification = QueuedMessage
		m.notificationType = "success"
		m.showNotification = true
		return m, tea.Tick(3*time.Second, func(time.Time) tea.Msg {
			return clearNotificationMsg{}
		})

	case validationMsg:
		m.loading = false
		if msg.mapped {
			m.message = "All items are mapped and registered"
			m.messageType = "success"
		} else {
			m.message = "Some items are not yet mapped or registered. Press 'c' to create them."
			m.messageType = "error"
		}
		return m, nil

	case clearNotificationMsg:
		m.showNotification = false
		m.notification = ""
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	switch m.view {
	case ViewMain:
		m.mainMenu, cmd = m.mainMenu.Update(msg)
	case ViewUsers, ViewPurchases, ViewItems, ViewMovements, ViewNotices:
		m.currentList, cmd = m.currentList.Update(msg)
	}

	return m, cmd
}

func (m *Model) trimBreadcrumbs() {
	if len(m.breadcrumbs) > 2 {
		m.breadcrumbs = m.breadcrumbs[:2]
	}
}

// confirm switches into the confirmation dialog for a remote action.
func (m Model) confirm(action, target, message string) Model {
	m.confirmAction = action
	m.selectedItem = target
	m.confirmMsg = message
	m.prevView = m.view
	m.view = ViewConfirmAction
	return m
}

func (m Model) handleEnter() (tea.Model, tea.Cmd) {
	switch m.view {
	case ViewMain:
		if item, ok := m.mainMenu.SelectedItem().(MenuItem); ok {
			m.view = item.view
			m.loading = true
			m.breadcrumbs = []string{"Main", item.title}

			switch item.view {
			case ViewUsers:
				return m, m.loadUsers()
			case ViewPurchases:
				return m, m.loadPurchases()
			case ViewItems:
				return m, m.loadUnregisteredItems()
			case ViewMovements:
				return m, m.loadMovements()
			case ViewNotices:
				return m, m.loadNotices()
			}
		}

	case ViewUsers:
		if item, ok := m.currentList.SelectedItem().(ListItem); ok {
			m.selectedItem = item.name
			m.view = ViewUserDetail
			m.loading = true
			m.breadcrumbs = append(m.breadcrumbs, item.name)
			return m, m.loadRecordDetail(DoctypeBranchUser, item.name)
		}

	case ViewPurchases:
		if item, ok := m.currentList.SelectedItem().(ListItem); ok {
			m.selectedItem = item.name
			m.view = ViewPurchaseDetail
			m.loading = true
			m.breadcrumbs = append(m.breadcrumbs, item.name)
			return m, m.loadRecordDetail(DoctypeRegPurchases, item.name)
		}

	case ViewMovements:
		if item, ok := m.currentList.SelectedItem().(ListItem); ok {
			m.selectedItem = item.name
			m.view = ViewMovementDetail
			m.loading = true
			m.breadcrumbs = append(m.breadcrumbs, item.name)
			return m, m.loadRecordDetail(DoctypeStockMovement, item.name)
		}
	}

	return m, nil
}

func (m Model) refreshCurrentView() (tea.Model, tea.Cmd) {
	m.loading = true
	switch m.view {
	case ViewUsers:
		return m, m.loadUsers()
	case ViewPurchases:
		return m, m.loadPurchases()
	case ViewItems:
		return m, m.loadUnregisteredItems()
	case ViewMovements:
		return m, m.loadMovements()
	case ViewNotices:
		return m, m.loadNotices()
	case ViewUserDetail:
		return m, m.loadRecordDetail(DoctypeBranchUser, m.selectedItem)
	case ViewPurchaseDetail:
		return m, m.loadRecordDetail(DoctypeRegPurchases, m.selectedItem)
	case ViewMovementDetail:
		return m, m.loadRecordDetail(DoctypeStockMovement, m.selectedItem)
	}
	m.loading = false
	return m, nil
}

func (m *Model) setListTitle() {
	switch m.view {
	case ViewUsers:
		m.currentList.Title = "Branch Users"
	case ViewPurchases:
		m.currentList.Title = "Registered Purchases"
	case ViewItems:
		m.currentList.Title = "Unregistered Items"
	case ViewMovements:
		m.currentList.Title = "Registered Stock Movements"
	case ViewNotices:
		m.currentList.Title = "Notices"
	}
	m.currentList.Styles.Title = titleStyle
}

func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var content string

	switch m.view {
	case ViewMain:
		content = m.mainMenu.View()
	case ViewUsers, ViewPurchases, ViewItems, ViewMovements, ViewNotices:
		if m.loading {
			content = fmt.Sprintf("\n  %s Loading...", m.spinner.View())
		} else {
			content = m.currentList.View()
		}
	case ViewUserDetail, ViewPurchaseDetail, ViewMovementDetail:
		content = m.renderRecordDetail()
	case ViewConfirmAction:
		content = m.renderConfirmAction()
	}

	var b strings.Builder

	b.WriteString(m.renderStatusBar())
	b.WriteString("\n")

	b.WriteString(m.renderBreadcrumbs())
	b.WriteString("\n")

	if m.showNotification {
		if m.notificationType == "success" {
			b.WriteString(notificationSuccess.Render("✓ " + m.notification))
		} else {
			b.WriteString(notificationError.Render("✗ " + m.notification))
		}
		b.WriteString("\n")
	}

	b.WriteString(content)

	if m.message != "" {
		b.WriteString("\n\n")
		if m.messageType == "error" {
			b.WriteString(errorStyle.Render("Error: " + m.message))
		} else if m.messageType == "success" {
			b.WriteString(successStyle.Render("✓ " + m.message))
		}
	}

	b.WriteString("\n\n")
	b.WriteString(m.renderHelp())

	b.WriteString("\n")
	b.WriteString(m.renderCredits())

	return b.String()
}

func (m Model) renderStatusBar() string {
	var mode string
	if m.client.Mode == "vpn" {
		mode = vpnStyle.Render("● VPN")
	} else {
		mode = internetStyle.Render("● Internet")
	}

	status := fmt.Sprintf(" %s | %s | %s ", m.client.Config.Brand, mode, m.client.ActiveURL)
	return statusBarStyle.Render(status)
}

func (m Model) renderBreadcrumbs() string {
	if len(m.breadcrumbs) == 0 {
		return ""
	}
	return breadcrumbStyle.Render("  " + strings.Join(m.breadcrumbs, " > "))
}

func (m Model) renderHelp() string {
	var help string
	switch m.view {
	case ViewMain:
		help = "↑/↓: navigate • enter: select • q: quit"
	case ViewUsers:
		help = "↑/↓: navigate • enter: detail • s: submit details • b: bulk create • r: refresh • /: search • esc: back"
	case ViewUserDetail:
		help = "esc: back • s: submit details • r: refresh"
	case ViewPurchases:
		help = "↑/↓: navigate • enter: detail • f: fetch purchases • r: refresh • /: search • esc: back"
	case ViewPurchaseDetail:
		help = "esc: back • s: create supplier • v: validate items • c: create items • i: create invoice"
	case ViewItems:
		help = "↑/↓: navigate • g: register selected • a: register all • f: imported item search • r: refresh • esc: back"
	case ViewMovements:
		help = "↑/↓: navigate • enter: detail • f: fetch movements • r: refresh • /: search • esc: back"
	case ViewMovementDetail:
		help = "esc: back • e: create stock entry • r: refresh"
	case ViewNotices:
		help = "↑/↓: navigate • f: fetch notices • r: refresh • esc: back"
	case ViewConfirmAction:
		help = "y: confirm • n: cancel"
	}
	return helpStyle.Render(help)
}

func (m Model) renderCredits() string {
	return creditStyle.Render(fmt.Sprintf("%s • v%s", m.client.Config.Brand, Version))
}

func (m Model) renderConfirmAction() string {
	content := fmt.Sprintf(`
  %s

  The server queues the request and reports progress in its integration log.

  [y] Yes, proceed    [n] No, cancel
`, m.confirmMsg)

	return boxStyle.Render(content)
}

// RunTUI starts the TUI
func RunTUI(client *Client) error {
	p := tea.NewProgram(NewTUI(client), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
