package cmd

import (
	"fmt"
	"strings"

	"github.com/nibzard/todoforge/internal/config"
)

const bashCompletion = `# todoforge bash completion
_todoforge() {
    local cur prev
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"

    case "$prev" in
        todoforge)
            COMPREPLY=($(compgen -W "ls add done undo edit remove toggle spaces export doctor init completion version help" -- "$cur"))
            return 0
            ;;
        spaces)
            COMPREPLY=($(compgen -W "ls add switch rename remove" -- "$cur"))
            return 0
            ;;
        switch|rename|remove)
            if [[ "${COMP_WORDS[1]}" == "spaces" ]]; then
                COMPREPLY=($(compgen -W "$(todoforge spaces ls 2>/dev/null | tr -d '*')" -- "$cur"))
            fi
            return 0
            ;;
        -format)
            COMPREPLY=($(compgen -W "json yaml" -- "$cur"))
            return 0
            ;;
        completion)
            COMPREPLY=($(compgen -W "bash zsh fish" -- "$cur"))
            return 0
            ;;
    esac
}
complete -F _todoforge todoforge
`

const zshCompletion = `#compdef todoforge
# todoforge zsh completion

_todoforge() {
    local -a commands spaces_commands
    commands=(
        'ls:Show todos in the current space'
        'add:Add a todo'
        'done:Mark a todo as done'
        'undo:Mark a todo as not done'
        'edit:Edit the title of a todo'
        'remove:Remove a todo'
        'toggle:Toggle todos'
        'spaces:Manage spaces'
        'export:Print the current space'
        'doctor:Check settings and files'
        'init:Create the config directory'
        'completion:Print shell completion'
        'version:Show version information'
        'help:Show help'
    )
    spaces_commands=(ls add switch rename remove)

    if (( CURRENT == 2 )); then
        _describe 'command' commands
    elif [[ "${words[2]}" == "spaces" && CURRENT -eq 3 ]]; then
        _values 'spaces command' $spaces_commands
    elif [[ "${words[2]}" == "completion" ]]; then
        _values 'shell' bash zsh fish
    fi
}

_todoforge "$@"
`

const fishCompletion = `# todoforge fish completion
set -l commands ls add done undo edit remove toggle spaces export doctor init completion version help
complete -c todoforge -f
complete -c todoforge -n "not __fish_seen_subcommand_from $commands" -a "$commands"
complete -c todoforge -n "__fish_seen_subcommand_from spaces" -a "ls add switch rename remove"
complete -c todoforge -n "__fish_seen_subcommand_from completion" -a "bash zsh fish"
complete -c todoforge -n "__fish_seen_subcommand_from export" -l format -a "json yaml"
`

// completionCommand prints a shell completion script.
func completionCommand(_ *config.Config, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: todoforge completion <bash|zsh|fish>")
	}

	switch strings.ToLower(args[0]) {
	case "bash":
		fmt.Print(bashCompletion)
	case "zsh":
		fmt.Print(zshCompletion)
	case "fish":
		fmt.Print(fishCompletion)
	default:
		return fmt.Errorf("unsupported shell: %s (expected bash|zsh|fish)", args[0])
	}
	return nil
}
